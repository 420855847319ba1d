package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"playtube/internal/model"
	"playtube/pkg/logger"

	"go.uber.org/zap"
)

// ESVideoDoc ES 视频文档结构，只收录已发布视频
type ESVideoDoc struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"owner_id"`
	OwnerName   string `json:"owner_name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Views       int64  `json:"views"`
	Duration    int    `json:"duration"`
	CreatedAt   string `json:"created_at"`
}

// VideoToDoc 由视频实体构造 ES 文档
func VideoToDoc(v *model.Video, ownerName string) *ESVideoDoc {
	return &ESVideoDoc{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		OwnerName:   ownerName,
		Title:       v.Title,
		Description: v.Description,
		Views:       v.Views,
		Duration:    v.Duration,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
	}
}

// SyncVideo 写入或覆盖单个视频文档
func SyncVideo(ctx context.Context, doc *ESVideoDoc) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := Index(ctx, videosIndexName(), fmt.Sprintf("%d", doc.ID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video synced to ES", zap.Int64("video_id", doc.ID))
	return nil
}

// DeleteVideo 从索引中移除视频（文档不存在不算错误）
func DeleteVideo(ctx context.Context, videoID int64) error {
	resp, err := Delete(ctx, videosIndexName(), fmt.Sprintf("%d", videoID))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkSyncVideos 批量写入视频文档（全量重建索引用）
func BulkSyncVideos(ctx context.Context, docs []*ESVideoDoc) (success, failed int, err error) {
	indexName := videosIndexName()

	var buf strings.Builder
	for _, doc := range docs {
		docBody, _ := json.Marshal(doc)

		buf.WriteString(fmt.Sprintf(`{"index":{"_index":"%s","_id":"%d"}}`, indexName, doc.ID))
		buf.WriteString("\n")
		buf.Write(docBody)
		buf.WriteString("\n")
	}

	if buf.Len() == 0 {
		return 0, 0, nil
	}

	resp, err := Bulk(ctx, strings.NewReader(buf.String()))
	if err != nil {
		return 0, len(docs), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(docs), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return len(docs), 0, nil
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

// SearchVideoIDs 全文检索视频，返回命中的视频 ID 列表与总数
// sortBy 为空时按相关度排序
func SearchVideoIDs(ctx context.Context, query string, from, size int, sortBy, sortType string) ([]int64, int64, error) {
	var sortClause string
	if sortBy != "" {
		order := "desc"
		if strings.EqualFold(sortType, "asc") {
			order = "asc"
		}
		sortClause = fmt.Sprintf(`"sort": [{"%s": {"order": "%s"}}],`, sortBy, order)
	}

	body := fmt.Sprintf(`{
		%s
		"from": %d,
		"size": %d,
		"_source": false,
		"query": {
			"multi_match": {
				"query": %s,
				"fields": ["title^2", "description"]
			}
		}
	}`, sortClause, from, size, mustJSONString(query))

	resp, err := Search(ctx, videosIndexName(), strings.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, 0, fmt.Errorf("search failed: %s", resp.String())
	}

	var searchResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]int64, 0, len(searchResp.Hits.Hits))
	for _, hit := range searchResp.Hits.Hits {
		var id int64
		if _, err := fmt.Sscanf(hit.ID, "%d", &id); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, searchResp.Hits.Total.Value, nil
}

func mustJSONString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
