package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HashIP 对 IP 地址进行哈希处理（用于匿名统计）
func HashIP(ip string) string {
	hash := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(hash[:8]) // 只取前8字节，足够用于统计
}

// OK 成功响应，data 会平铺进 {"success": true, ...}
func OK(c *gin.Context, data gin.H) {
	respond(c, http.StatusOK, data)
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data gin.H) {
	respond(c, http.StatusCreated, data)
}

func respond(c *gin.Context, status int, data gin.H) {
	payload := gin.H{"success": true}
	for k, v := range data {
		payload[k] = v
	}
	c.JSON(status, payload)
}

// Fail 错误响应：{"success": false, "message": ...}
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// FailErr 错误响应并附带底层错误信息，release 模式下只保留 message
func FailErr(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"success": false,
		"message": message,
	}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}
