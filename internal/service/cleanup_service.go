package service

import (
	"log"
	"time"
)

const (
	searchLogRetentionDays = 90
	keywordRetentionDays   = 30
)

// LogCleaner 过期数据的清理能力
type LogCleaner interface {
	DeleteOldLogs(days int) (int64, error)
	DeleteOldKeywords(days int) (int64, error)
}

// CleanupService 定时清理过期搜索日志和失活热搜词
type CleanupService struct {
	logs LogCleaner
	stop chan struct{}
}

// NewCleanupService 创建清理服务
func NewCleanupService(logs LogCleaner) *CleanupService {
	return &CleanupService{
		logs: logs,
		stop: make(chan struct{}),
	}
}

// Start 启动后台清理，启动时先跑一轮，之后每天一次
func (s *CleanupService) Start() {
	go func() {
		s.runOnce()

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-s.stop:
				return
			}
		}
	}()
	log.Println("[CleanupService] 后台清理已启动")
}

// Stop 停止后台清理
func (s *CleanupService) Stop() {
	close(s.stop)
}

func (s *CleanupService) runOnce() {
	if n, err := s.logs.DeleteOldLogs(searchLogRetentionDays); err != nil {
		log.Printf("[CleanupService] 清理搜索日志失败: %v", err)
	} else if n > 0 {
		log.Printf("[CleanupService] 清理搜索日志 %d 条", n)
	}

	if n, err := s.logs.DeleteOldKeywords(keywordRetentionDays); err != nil {
		log.Printf("[CleanupService] 清理热搜关键词失败: %v", err)
	} else if n > 0 {
		log.Printf("[CleanupService] 清理热搜关键词 %d 条", n)
	}
}
