package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/user/tourhub/internal/model"
	"gorm.io/gorm"
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

// FindByID 根据 ID 查找行程
func (r *TripRepository) FindByID(id int) (*model.Trip, error) {
	var trip model.Trip
	err := r.db.Where("id = ?", id).First(&trip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// SearchExact 精确搜索：关键词对标题/地区/描述做不区分大小写的子串匹配，
// 按加权相关度排序（标题 10、地区 8、描述 3，命中多个字段累加），同分按出发日期倒序
func (r *TripRepository) SearchExact(keyword string, limit, offset int) ([]model.Trip, error) {
	pattern := "%" + escapeLike(keyword) + "%"

	var trips []model.Trip
	err := r.db.Raw(`
		SELECT *,
		       (CASE WHEN title ILIKE @kw THEN 10 ELSE 0 END +
		        CASE WHEN area ILIKE @kw THEN 8 ELSE 0 END +
		        CASE WHEN description ILIKE @kw THEN 3 ELSE 0 END) AS relevance_score
		FROM trips
		WHERE title ILIKE @kw OR area ILIKE @kw OR description ILIKE @kw
		ORDER BY relevance_score DESC, start_date DESC
		LIMIT @lim OFFSET @off
	`, sql.Named("kw", pattern), sql.Named("lim", limit), sql.Named("off", offset)).Scan(&trips).Error
	return trips, err
}

// CountExact 精确搜索的总命中数
func (r *TripRepository) CountExact(keyword string) (int64, error) {
	pattern := "%" + escapeLike(keyword) + "%"

	var count int64
	err := r.db.Raw(`
		SELECT COUNT(*) FROM trips
		WHERE title ILIKE @kw OR area ILIKE @kw OR description ILIKE @kw
	`, sql.Named("kw", pattern)).Scan(&count).Error
	return count, err
}

// 去掉空白和标点后的字段表达式，模糊搜索的两种匹配都基于它
const tripFuzzyWhere = `
	regexp_replace(lower(title), '[[:space:][:punct:]]+', '', 'g') LIKE @sub OR
	regexp_replace(lower(title), '[[:space:][:punct:]]+', '', 'g') LIKE @pat OR
	regexp_replace(lower(area), '[[:space:][:punct:]]+', '', 'g') LIKE @sub OR
	regexp_replace(lower(area), '[[:space:][:punct:]]+', '', 'g') LIKE @pat OR
	regexp_replace(lower(description), '[[:space:][:punct:]]+', '', 'g') LIKE @sub OR
	regexp_replace(lower(description), '[[:space:][:punct:]]+', '', 'g') LIKE @pat`

// SearchFuzzy 模糊搜索：cleaned 是去掉空白/标点的小写关键词，pattern 是逐字符
// 穿插 % 的 LIKE 模式（字符按序出现即可，无需连续）。无相关度，按出发日期倒序
func (r *TripRepository) SearchFuzzy(cleaned, pattern string, limit, offset int) ([]model.Trip, error) {
	var trips []model.Trip
	err := r.db.Raw(`
		SELECT * FROM trips
		WHERE `+tripFuzzyWhere+`
		ORDER BY start_date DESC
		LIMIT @lim OFFSET @off
	`, sql.Named("sub", "%"+escapeLike(cleaned)+"%"), sql.Named("pat", pattern),
		sql.Named("lim", limit), sql.Named("off", offset)).Scan(&trips).Error
	return trips, err
}

// CountFuzzy 模糊搜索的总命中数
func (r *TripRepository) CountFuzzy(cleaned, pattern string) (int64, error) {
	var count int64
	err := r.db.Raw(`
		SELECT COUNT(*) FROM trips WHERE `+tripFuzzyWhere,
		sql.Named("sub", "%"+escapeLike(cleaned)+"%"), sql.Named("pat", pattern)).Scan(&count).Error
	return count, err
}

// SearchToken 分词搜索：任一 token 命中任一字段即算命中（OR 语义）
func (r *TripRepository) SearchToken(tokens []string, limit, offset int) ([]model.Trip, error) {
	if len(tokens) == 0 {
		return []model.Trip{}, nil
	}

	conds := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)*3+2)
	for _, tok := range tokens {
		p := "%" + escapeLike(tok) + "%"
		conds = append(conds, "(title ILIKE ? OR area ILIKE ? OR description ILIKE ?)")
		args = append(args, p, p, p)
	}
	args = append(args, limit, offset)

	var trips []model.Trip
	err := r.db.Raw(`
		SELECT * FROM trips
		WHERE `+strings.Join(conds, " OR ")+`
		ORDER BY start_date DESC
		LIMIT ? OFFSET ?
	`, args...).Scan(&trips).Error
	return trips, err
}

// RankByDate 即将出发的行程，出发日期越近越靠前
func (r *TripRepository) RankByDate(f model.RankingFilters, limit int) ([]model.Trip, error) {
	where, args := rankingFilterSQL(f)

	var trips []model.Trip
	err := r.db.Raw(`
		SELECT * FROM trips
		WHERE start_date >= CURRENT_DATE`+where+`
		ORDER BY start_date ASC
		LIMIT ?
	`, append(args, limit)...).Scan(&trips).Error
	return trips, err
}

// RankByArea 每个地区取一条代表行程（该地区出发日期最近的一条）
func (r *TripRepository) RankByArea(f model.RankingFilters, limit int) ([]model.Trip, error) {
	where, args := rankingFilterSQL(f)

	var trips []model.Trip
	err := r.db.Raw(`
		SELECT DISTINCT ON (area) * FROM trips
		WHERE area <> ''`+where+`
		ORDER BY area, start_date DESC
		LIMIT ?
	`, append(args, limit)...).Scan(&trips).Error
	return trips, err
}

// RankByDuration 行程越长越靠前，同长度按出发日期升序
func (r *TripRepository) RankByDuration(f model.RankingFilters, limit int) ([]model.Trip, error) {
	where, args := rankingFilterSQL(f)

	var trips []model.Trip
	err := r.db.Raw(`
		SELECT * FROM trips
		WHERE TRUE`+where+`
		ORDER BY (end_date - start_date) DESC, start_date ASC
		LIMIT ?
	`, append(args, limit)...).Scan(&trips).Error
	return trips, err
}

// RankTrending 最近 30 天内已出发的行程，按热度分倒序。
// 窗口两端都封住，未来出发的行程不算"最近出发"
func (r *TripRepository) RankTrending(f model.RankingFilters, limit int) ([]model.Trip, error) {
	where, args := rankingFilterSQL(f)

	var trips []model.Trip
	err := r.db.Raw(`
		SELECT t.* FROM trips t
		LEFT JOIN trip_stats s ON s.trip_id = t.id
		WHERE t.start_date >= CURRENT_DATE - INTERVAL '30 days'
		  AND t.start_date <= CURRENT_DATE`+where+`
		ORDER BY COALESCE(s.popularity_score, 0) DESC, t.start_date DESC
		LIMIT ?
	`, append(args, limit)...).Scan(&trips).Error
	return trips, err
}

// ListAreas 去重后的非空地区列表
func (r *TripRepository) ListAreas() ([]string, error) {
	var areas []string
	err := r.db.Raw(`
		SELECT DISTINCT area FROM trips
		WHERE area IS NOT NULL AND area <> ''
		ORDER BY area
	`).Scan(&areas).Error
	return areas, err
}

// FindNearest 按向量距离查找相似行程（要求源行程已有嵌入）
func (r *TripRepository) FindNearest(id, limit int) ([]model.Trip, error) {
	var trips []model.Trip
	err := r.db.Raw(`
		SELECT * FROM trips
		WHERE id <> @id AND embedding IS NOT NULL
		ORDER BY embedding <=> (SELECT embedding FROM trips WHERE id = @id)
		LIMIT @lim
	`, sql.Named("id", id), sql.Named("lim", limit)).Scan(&trips).Error
	return trips, err
}

// FindByAreaExcept 同地区的其他行程，嵌入缺失时的相似推荐兜底
func (r *TripRepository) FindByAreaExcept(area string, exceptID, limit int) ([]model.Trip, error) {
	var trips []model.Trip
	err := r.db.Raw(`
		SELECT * FROM trips
		WHERE area = ? AND id <> ?
		ORDER BY start_date DESC
		LIMIT ?
	`, area, exceptID, limit).Scan(&trips).Error
	return trips, err
}

// ListMissingEmbedding 尚未生成嵌入的行程
func (r *TripRepository) ListMissingEmbedding(limit int) ([]model.Trip, error) {
	var trips []model.Trip
	err := r.db.Raw(`
		SELECT * FROM trips WHERE embedding IS NULL ORDER BY id LIMIT ?
	`, limit).Scan(&trips).Error
	return trips, err
}

// UpdateEmbedding 写入行程嵌入
func (r *TripRepository) UpdateEmbedding(id int, vec pgvector.Vector) error {
	return r.db.Exec(`UPDATE trips SET embedding = ? WHERE id = ?`, vec, id).Error
}

// rankingFilterSQL 把排行榜过滤条件翻译成附加谓词，口径与衍生字段一致
func rankingFilterSQL(f model.RankingFilters) (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	switch f.DurationType {
	case model.DurationWeekend:
		sb.WriteString(" AND (end_date - start_date + 1) <= 2")
	case model.DurationShortTrip:
		sb.WriteString(" AND (end_date - start_date + 1) BETWEEN 3 AND 5")
	case model.DurationLongBreak:
		sb.WriteString(" AND (end_date - start_date + 1) BETWEEN 6 AND 10")
	case model.DurationDeepTravel:
		sb.WriteString(" AND (end_date - start_date + 1) > 10")
	}

	if months := seasonMonths(f.Season); len(months) > 0 {
		sb.WriteString(" AND EXTRACT(MONTH FROM start_date) IN (?, ?, ?)")
		for _, m := range months {
			args = append(args, m)
		}
	}

	return sb.String(), args
}

func seasonMonths(season string) []int {
	switch season {
	case model.SeasonSpring:
		return []int{3, 4, 5}
	case model.SeasonSummer:
		return []int{6, 7, 8}
	case model.SeasonAutumn:
		return []int{9, 10, 11}
	case model.SeasonWinter:
		return []int{12, 1, 2}
	}
	return nil
}

// escapeLike 转义 LIKE 模式里的特殊字符，关键词始终只作为字面量匹配
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
