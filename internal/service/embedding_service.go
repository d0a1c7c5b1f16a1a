package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/user/tourhub/internal/config"
	"github.com/user/tourhub/internal/model"
	"github.com/user/tourhub/internal/utils"
)

// EmbeddingStore 嵌入补全所需的存储能力
type EmbeddingStore interface {
	ListMissingEmbedding(limit int) ([]model.Trip, error)
	UpdateEmbedding(id int, vec pgvector.Vector) error
}

// EmbeddingService 给缺嵌入的行程补向量，相似推荐依赖它
type EmbeddingService struct {
	trips EmbeddingStore
	cfg   *config.Config
}

// NewEmbeddingService 创建嵌入服务
func NewEmbeddingService(trips EmbeddingStore, cfg *config.Config) *EmbeddingService {
	return &EmbeddingService{trips: trips, cfg: cfg}
}

// RebuildMissing 为最多 limit 条缺嵌入的行程生成向量，返回成功条数。
// 单条失败只记日志跳过，剩下的下次再补
func (s *EmbeddingService) RebuildMissing(limit int) (int, error) {
	if s.cfg.GeminiAPIKey == "" {
		return 0, fmt.Errorf("GEMINI_API_KEY 未配置")
	}
	if limit <= 0 {
		limit = 50
	}

	trips, err := s.trips.ListMissingEmbedding(limit)
	if err != nil {
		return 0, err
	}

	done := 0
	for _, trip := range trips {
		values, err := utils.GetGeminiEmbedding(s.cfg.GeminiAPIKey, s.cfg.GeminiEmbedModel, embeddingText(&trip))
		if err != nil {
			log.Printf("[EmbeddingService] 生成嵌入失败 trip=%d: %v", trip.ID, err)
			continue
		}
		if err := s.trips.UpdateEmbedding(trip.ID, pgvector.NewVector(values)); err != nil {
			log.Printf("[EmbeddingService] 写入嵌入失败 trip=%d: %v", trip.ID, err)
			continue
		}
		done++
	}

	log.Printf("[EmbeddingService] 嵌入补全完成: %d/%d", done, len(trips))
	return done, nil
}

// embeddingText 拼接用于生成嵌入的行程文本
func embeddingText(t *model.Trip) string {
	parts := []string{t.Title, t.Area, t.Description}
	if len(t.Tags) > 0 {
		parts = append(parts, strings.Join(t.Tags, " "))
	}
	return strings.Join(parts, "\n")
}
