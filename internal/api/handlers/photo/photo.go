package photo

import (
	"errors"
	"net/http"

	"recipe-ingest/internal/core/photo"
	"recipe-ingest/internal/core/recipe"
	"recipe-ingest/internal/core/store"
	"recipe-ingest/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 圖片搜尋處理器
type Handler struct {
	photoService *photo.Service
	store        *store.Store
}

// NewHandler 創建圖片搜尋處理器
func NewHandler(p *photo.Service, s *store.Store) *Handler {
	return &Handler{photoService: p, store: s}
}

// AttachRequest 附加請求：選定的候選圖片，可選擇直接附到既有食譜
type AttachRequest struct {
	CandidateID string `json:"candidate_id" binding:"required"`
	RecipeID    string `json:"recipe_id,omitempty"`
}

// HandleSearch 以關鍵字搜尋候選圖片
func (h *Handler) HandleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required", "code": common.ErrCodeInvalidRequest})
		return
	}

	candidates, err := h.photoService.Search(c.Request.Context(), query)
	if err != nil {
		common.LogError("圖片搜尋失敗", zap.String("query", query), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates, "count": len(candidates)})
}

// HandleAttach 確認署名並取得持久 URL；
// 帶 recipe_id 時順手把圖片附到該食譜（存回草稿狀態不變）
func (h *Handler) HandleAttach(c *gin.Context) {
	var req AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidRequest.Message, "code": common.ErrCodeInvalidRequest})
		return
	}

	url, err := h.photoService.Attach(c.Request.Context(), req.CandidateID)
	if err != nil {
		common.LogError("圖片附加失敗", zap.String("candidate_id", req.CandidateID), zap.Error(err))
		respondError(c, err)
		return
	}

	if req.RecipeID != "" {
		r, err := h.store.Load(c.Request.Context(), req.RecipeID)
		if err != nil {
			respondError(c, err)
			return
		}
		r.Images = append(r.Images, url)
		if _, err := h.store.Save(c.Request.Context(), r, r.Status != recipe.StatusPublished); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// respondError 依錯誤類型決定狀態碼
func respondError(c *gin.Context, err error) {
	var ce *common.CustomError
	if errors.As(err, &ce) {
		c.JSON(ce.Status, gin.H{"error": ce.Message, "code": ce.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": common.ErrCodeInternalError})
}
