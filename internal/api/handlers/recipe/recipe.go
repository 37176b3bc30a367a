package recipe

import (
	"errors"
	"net/http"

	coreRecipe "recipe-ingest/internal/core/recipe"
	"recipe-ingest/internal/core/store"
	"recipe-ingest/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜處理器：合併、驗證、套用與存取
type Handler struct {
	store *store.Store
}

// NewHandler 創建食譜處理器
func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s}
}

// MergeRequest 合併請求：現有食譜、建議片段與合併策略
type MergeRequest struct {
	Current    coreRecipe.Recipe   `json:"current" binding:"required"`
	Suggestion coreRecipe.Fragment `json:"suggestion" binding:"required"`
	Policy     string              `json:"policy" binding:"required"` // keep、replace 或 merge
}

// ApplyRequest 片段套用請求：片段轉成完整食譜（含預設值）
type ApplyRequest struct {
	Fragment coreRecipe.Fragment `json:"fragment" binding:"required"`
}

// SaveRequest 儲存請求
type SaveRequest struct {
	Recipe  coreRecipe.Recipe `json:"recipe" binding:"required"`
	AsDraft bool              `json:"as_draft"`
}

// HandleMerge 依策略合併建議片段，純計算不落盤
func (h *Handler) HandleMerge(c *gin.Context) {
	var req MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidRequest.Message, "code": common.ErrCodeInvalidRequest})
		return
	}

	policy, err := coreRecipe.ParsePolicy(req.Policy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
		return
	}

	merged := coreRecipe.Merge(&req.Current, &req.Suggestion, policy)
	c.JSON(http.StatusOK, gin.H{"recipe": merged})
}

// HandleApply 把片段套用成完整食譜，缺漏欄位補預設值
func (h *Handler) HandleApply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidRequest.Message, "code": common.ErrCodeInvalidRequest})
		return
	}

	r := coreRecipe.FromFragment(&req.Fragment)
	c.JSON(http.StatusOK, gin.H{"recipe": r})
}

// HandleValidate 驗證食譜，一次回傳所有欄位錯誤
func (h *Handler) HandleValidate(c *gin.Context) {
	var r coreRecipe.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidRequest.Message, "code": common.ErrCodeInvalidRequest})
		return
	}

	c.JSON(http.StatusOK, coreRecipe.Validate(&r))
}

// HandleSave 儲存食譜；非草稿必須通過驗證
func (h *Handler) HandleSave(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidRequest.Message, "code": common.ErrCodeInvalidRequest})
		return
	}

	result, err := h.store.Save(c.Request.Context(), &req.Recipe, req.AsDraft)
	if err != nil {
		if errors.Is(err, common.ErrRecipeNotValid) && result != nil {
			// 驗證失敗要把完整錯誤清單帶回去
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      common.ErrRecipeNotValid.Message,
				"code":       common.ErrRecipeNotValid.Code,
				"validation": result.Validation,
			})
			return
		}
		common.LogError("食譜儲存失敗", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleGet 讀取食譜
func (h *Handler) HandleGet(c *gin.Context) {
	id := c.Param("id")

	r, err := h.store.Load(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": r})
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
