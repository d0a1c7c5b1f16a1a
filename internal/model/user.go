package model

import (
	"time"
)

// SessionUser LINE 登录后写入 Session 的用户信息
type SessionUser struct {
	UserID      string // LINE userId（sub）
	DisplayName string
	PictureURL  string
}

// AdminUser 后台管理账号（普通用户走 LINE 登录，不存密码）
type AdminUser struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
