package importer

import (
	"errors"
	"net/http"

	"recipe-ingest/internal/core/pipeline"
	"recipe-ingest/internal/core/recipe"
	"recipe-ingest/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 匯入處理器：四種來源共用同一個管線
type Handler struct {
	importer *pipeline.Importer
}

// NewHandler 創建匯入處理器
func NewHandler(im *pipeline.Importer) *Handler {
	return &Handler{importer: im}
}

// ImportTextRequest 文字匯入請求
type ImportTextRequest struct {
	Text   string `json:"text" binding:"required"`
	Source string `json:"source,omitempty"` // 預設 clipboard
}

// GenerateRequest 以食材生成食譜的請求
type GenerateRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1"`
}

// ImportImageRequest 圖片匯入請求，image 可為 URL、data URI 或裸 base64
type ImportImageRequest struct {
	Image string `json:"image" binding:"required"`
}

// ImportURLRequest 網頁匯入請求
type ImportURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// ImportResponse 匯入結果：零到多個片段，由前端逐一審閱
type ImportResponse struct {
	Fragments []recipe.Fragment `json:"fragments"`
	Count     int               `json:"count"`
}

// HandleImportText 解析貼上的文字
func (h *Handler) HandleImportText(c *gin.Context) {
	var req ImportTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidRequest.Message, "code": common.ErrCodeInvalidRequest})
		return
	}

	source := recipe.SourceClipboard
	if req.Source != "" {
		source = recipe.SourceKind(req.Source)
	}

	fragments := h.importer.ImportText(req.Text, source)
	c.JSON(http.StatusOK, ImportResponse{Fragments: fragments, Count: len(fragments)})
}

// HandleGenerate 以食材清單請 AI 生成食譜
func (h *Handler) HandleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidRequest.Message, "code": common.ErrCodeInvalidRequest})
		return
	}

	fragments, err := h.importer.GenerateFromIngredients(c.Request.Context(), req.Ingredients)
	if err != nil {
		common.LogError("食譜生成失敗", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ImportResponse{Fragments: fragments, Count: len(fragments)})
}

// HandleImportImage 圖片匯入（OCR）
func (h *Handler) HandleImportImage(c *gin.Context) {
	var req ImportImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidRequest.Message, "code": common.ErrCodeInvalidRequest})
		return
	}

	fragments, err := h.importer.ImportImage(c.Request.Context(), req.Image)
	if err != nil {
		common.LogError("圖片匯入失敗", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ImportResponse{Fragments: fragments, Count: len(fragments)})
}

// HandleImportURL 網頁匯入
func (h *Handler) HandleImportURL(c *gin.Context) {
	var req ImportURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidRequest.Message, "code": common.ErrCodeInvalidRequest})
		return
	}

	fragments, err := h.importer.ImportURL(c.Request.Context(), req.URL)
	if err != nil {
		common.LogError("網頁匯入失敗", zap.String("url", req.URL), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ImportResponse{Fragments: fragments, Count: len(fragments)})
}

// respondError 依錯誤類型決定狀態碼，CustomError 帶自己的狀態碼
func respondError(c *gin.Context, err error) {
	var ce *common.CustomError
	if errors.As(err, &ce) {
		c.JSON(ce.Status, gin.H{"error": ce.Message, "code": ce.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": common.ErrCodeInternalError})
}
