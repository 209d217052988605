package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"content-admin/contents"
	"content-admin/middleware"
	"content-admin/models"
	"content-admin/utils"
	"content-admin/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ContentHandler struct {
	Service  *contents.Service
	Location *time.Location
}

// contentRequest is the content form body. Times are strings so that the
// admin forms can send local datetime values as well as RFC3339.
type contentRequest struct {
	Content struct {
		ID          *uuid.UUID `json:"id"`
		Title       *string    `json:"title"`
		Body        *string    `json:"body"`
		StartTime   *string    `json:"start_time"`
		EndTime     *string    `json:"end_time"`
		TargetFlag  *string    `json:"target_flag"`
		ForCustomer *bool      `json:"for_customer"`
		ForEmployee *bool      `json:"for_employee"`
	} `json:"content"`
	CompanyID *uuid.UUID `json:"company_id"`
	BrandIDs  *string    `json:"brand_ids"`
	RankIDs   *string    `json:"rank_ids"`
	IsBack    bool       `json:"is_back"`
}

type contentView struct {
	models.Content
	RelationNames string `json:"relation_names"`
}

func viewOf(c *models.Content) contentView {
	return contentView{Content: *c, RelationNames: c.RelationNames()}
}

func (h *ContentHandler) location() *time.Location {
	if h.Location == nil {
		return time.UTC
	}
	return h.Location
}

func (h *ContentHandler) parseTime(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := utils.ParseTime(*value, h.location())
	if err != nil {
		return nil, err
	}
	if t == nil {
		// Submitted blank: clear the field.
		return &time.Time{}, nil
	}
	return t, nil
}

// bindParams reads the request body into command params. GET requests and
// empty bodies yield empty params.
func (h *ContentHandler) bindParams(c *gin.Context, actor contents.Actor) (contents.Params, bool) {
	var req contentRequest
	if c.Request.Method != http.MethodGet && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
			return contents.Params{}, false
		}
	}

	start, err := h.parseTime(req.Content.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return contents.Params{}, false
	}
	end, err := h.parseTime(req.Content.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return contents.Params{}, false
	}

	p := contents.Params{
		Content: contents.ContentParams{
			ID:          req.Content.ID,
			Title:       req.Content.Title,
			Body:        req.Content.Body,
			StartTime:   start,
			EndTime:     end,
			TargetFlag:  req.Content.TargetFlag,
			ForCustomer: req.Content.ForCustomer,
			ForEmployee: req.Content.ForEmployee,
		},
		CompanyID:  req.CompanyID,
		BrandIDs:   req.BrandIDs,
		RankIDs:    req.RankIDs,
		Submission: contents.FreshSubmission,
	}
	if req.IsBack {
		p.Submission = contents.ReturningFromConfirmation
	}
	// Company staff always submit for their own company.
	if p.CompanyID == nil && !actor.Global() {
		p.CompanyID = actor.CompanyID
	}
	return p, true
}

func formJSON(res *contents.Result) gin.H {
	return gin.H{
		"content":       viewOf(res.Content),
		"brands":        res.Relations,
		"content_ranks": res.ContentRanks,
		"ranks_data":    res.RanksData,
		"params":        res.Params,
		"all_brands":    res.AllBrands,
		"labels":        validation.Labels,
	}
}

func invalidJSON(res *contents.Result) gin.H {
	body := formJSON(res)
	body["errors"] = res.Errors
	body["full_messages"] = res.Errors.FullMessages()
	return body
}

// fail maps a command error onto a response.
func (h *ContentHandler) fail(c *gin.Context, command string, err error) {
	var perr *contents.PersistenceError
	switch {
	case errors.Is(err, contents.ErrForbidden):
		middleware.RecordCommand(command, "forbidden")
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, contents.ErrNotFound):
		middleware.RecordCommand(command, "not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
	case errors.As(err, &perr):
		middleware.RecordCommand(command, "error")
		log.Printf("[content] %s failed: %v", command, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save content"})
	default:
		middleware.RecordCommand(command, "error")
		log.Printf("[content] %s failed: %v", command, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
	}
}

func (h *ContentHandler) GetContents(c *gin.Context) {
	actor := currentActor(c)

	q := contents.ListQuery{
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "per_page"),
		Q: contents.Query{
			S:               c.Query("q[s]"),
			TitleOrBodyCont: c.Query("q[title_or_body_cont]"),
			PerPage:         queryInt(c, "q[per_page]"),
			RelationIDEq:    queryID(c, "q[relation_id_eq]"),
		},
	}

	res, err := h.Service.GetList(h.Service.AccessibleScope(c.Request.Context(), actor), q)
	if err != nil {
		h.fail(c, "get_list", err)
		return
	}

	views := make([]contentView, 0, len(res.Records))
	for i := range res.Records {
		views = append(views, viewOf(&res.Records[i]))
	}
	middleware.RecordCommand("get_list", "ok")
	c.JSON(http.StatusOK, gin.H{
		"contents": views,
		"total":    res.Total,
		"page":     res.Page,
		"per_page": res.PerPage,
	})
}

// queryID returns nil for a missing or malformed id.
func queryID(c *gin.Context, key string) *uuid.UUID {
	id, err := uuid.Parse(c.Query(key))
	if err != nil {
		return nil
	}
	return &id
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// NewContent renders the form for a new content. A body with is_back restores
// the form from the confirmation step.
func (h *ContentHandler) NewContent(c *gin.Context) {
	actor := currentActor(c)
	p, ok := h.bindParams(c, actor)
	if !ok {
		return
	}

	res, err := h.Service.Build(c.Request.Context(), actor, h.Service.New(actor, p.CompanyID), p)
	if err != nil {
		h.fail(c, "build", err)
		return
	}
	middleware.RecordCommand("build", "ok")
	c.JSON(http.StatusOK, formJSON(res))
}

func (h *ContentHandler) ConfirmContent(c *gin.Context) {
	actor := currentActor(c)
	p, ok := h.bindParams(c, actor)
	if !ok {
		return
	}

	content := h.Service.New(actor, p.CompanyID)
	if p.Content.ID != nil {
		existing, err := h.Service.Find(c.Request.Context(), actor, *p.Content.ID)
		if err != nil {
			h.fail(c, "confirm", err)
			return
		}
		content = existing
	}

	res, err := h.Service.Confirm(c.Request.Context(), actor, content, p)
	if err != nil {
		h.fail(c, "confirm", err)
		return
	}
	if !res.Valid() {
		middleware.RecordCommand("confirm", "invalid")
		c.JSON(http.StatusUnprocessableEntity, invalidJSON(res))
		return
	}
	middleware.RecordCommand("confirm", "ok")
	c.JSON(http.StatusOK, formJSON(res))
}

func (h *ContentHandler) CreateContent(c *gin.Context) {
	actor := currentActor(c)
	p, ok := h.bindParams(c, actor)
	if !ok {
		return
	}

	res, err := h.Service.Create(c.Request.Context(), actor, p)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	if !res.Valid() {
		middleware.RecordCommand("create", "invalid")
		c.JSON(http.StatusUnprocessableEntity, invalidJSON(res))
		return
	}

	middleware.RecordCommand("create", "ok")
	c.JSON(http.StatusCreated, h.reload(c, actor, res.Content))
}

// reload returns the saved content with its brands for display.
func (h *ContentHandler) reload(c *gin.Context, actor contents.Actor, content *models.Content) contentView {
	saved, err := h.Service.Find(c.Request.Context(), actor, content.ID)
	if err != nil {
		return viewOf(content)
	}
	return viewOf(saved)
}

func (h *ContentHandler) GetContent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	content, err := h.Service.Find(c.Request.Context(), currentActor(c), id)
	if err != nil {
		h.fail(c, "find", err)
		return
	}
	middleware.RecordCommand("find", "ok")
	c.JSON(http.StatusOK, viewOf(content))
}

// EditContent renders the form for an existing content. A body with is_back
// restores the form from the confirmation step.
func (h *ContentHandler) EditContent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}
	actor := currentActor(c)
	p, ok := h.bindParams(c, actor)
	if !ok {
		return
	}

	content, err := h.Service.Find(c.Request.Context(), actor, id)
	if err != nil {
		h.fail(c, "build", err)
		return
	}
	res, err := h.Service.Build(c.Request.Context(), actor, content, p)
	if err != nil {
		h.fail(c, "build", err)
		return
	}
	middleware.RecordCommand("build", "ok")
	c.JSON(http.StatusOK, formJSON(res))
}

func (h *ContentHandler) UpdateContent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}
	actor := currentActor(c)
	p, ok := h.bindParams(c, actor)
	if !ok {
		return
	}

	content, err := h.Service.Find(c.Request.Context(), actor, id)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	res, err := h.Service.Update(c.Request.Context(), actor, content, p)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	if !res.Valid() {
		middleware.RecordCommand("update", "invalid")
		c.JSON(http.StatusUnprocessableEntity, invalidJSON(res))
		return
	}

	middleware.RecordCommand("update", "ok")
	c.JSON(http.StatusOK, h.reload(c, actor, res.Content))
}

func (h *ContentHandler) DeleteContent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	if err := h.Service.Discard(c.Request.Context(), currentActor(c), id); err != nil {
		h.fail(c, "discard", err)
		return
	}
	middleware.RecordCommand("discard", "ok")
	c.JSON(http.StatusOK, gin.H{"message": "Content deleted successfully"})
}

// PurgeContent removes a content and its rows for good. Global admins only.
func (h *ContentHandler) PurgeContent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	if err := h.Service.Destroy(c.Request.Context(), currentActor(c), id); err != nil {
		h.fail(c, "destroy", err)
		return
	}
	middleware.RecordCommand("destroy", "ok")
	c.JSON(http.StatusOK, gin.H{"message": "Content purged"})
}
