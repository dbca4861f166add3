package handlers

import (
	"bytes"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/readee/gateway/internal/mock/store"
	"github.com/readee/gateway/internal/models"
)

const (
	maxUploadMemory = 32 << 20
	minReasonLength = 10
)

type uploadResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type historyList struct {
	Documents  []models.UploadHistoryEntry `json:"documents"`
	Total      int                         `json:"total"`
	Page       int                         `json:"page"`
	Limit      int                         `json:"limit"`
	TotalPages int                         `json:"totalPages"`
}

type reReviewRequest struct {
	Reason string `json:"reason"`
}

type documentHandlers struct {
	store *store.UploadStore
}

// Documents serves the reader upload form, upload history and re-review
// requests.
func Documents(s *store.UploadStore) *Domain {
	h := documentHandlers{store: s}
	return newDomain("documents",
		on(http.MethodGet, "/api/reader/documents/types", h.types),
		on(http.MethodGet, "/api/reader/documents/domains", h.domains),
		on(http.MethodGet, "/api/reader/documents/tags", h.tags),
		on(http.MethodGet, "/api/reader/documents/specializations", h.specializations),
		on(http.MethodPost, "/api/reader/documents/upload", h.upload),
		on(http.MethodGet, "/api/reader/documents/upload-history", h.history),
		on(http.MethodPost, "/api/reader/documents/{id}/re-review", h.reReview),
	)
}

func (h documentHandlers) types(Request) (Response, error) {
	return ok(h.store.Types())
}

func (h documentHandlers) domains(Request) (Response, error) {
	return ok(h.store.Domains())
}

func (h documentHandlers) tags(req Request) (Response, error) {
	return ok(h.store.Tags(req.Query.Get("search")))
}

// specializations takes a comma separated domainIds list.
func (h documentHandlers) specializations(req Request) (Response, error) {
	var ids []string
	for _, id := range strings.Split(req.Query.Get("domainIds"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ok(h.store.Specializations(ids))
}

// upload accepts a multipart form with a file part and an optional info part
// holding the document metadata as JSON.
func (h documentHandlers) upload(req Request) (Response, error) {
	invalid := store.ValidationError{Field: "body", Message: "Invalid request body"}
	mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		return Response{}, invalid
	}
	form, err := multipart.NewReader(bytes.NewReader(req.Body), params["boundary"]).ReadForm(maxUploadMemory)
	if err != nil {
		return Response{}, invalid
	}
	defer form.RemoveAll()

	files := form.File["file"]
	if len(files) == 0 {
		return Response{}, store.ValidationError{Field: "file", Message: "File is required"}
	}
	u := store.Upload{FileName: files[0].Filename, Size: files[0].Size}
	if info := form.Value["info"]; len(info) > 0 && strings.TrimSpace(info[0]) != "" {
		if !gjson.Valid(info[0]) {
			return Response{}, store.MalformedBodyError{}
		}
		meta := gjson.Parse(info[0])
		u.TypeID = meta.Get("docTypeId").String()
		u.DomainID = meta.Get("domainId").String()
		u.SpecializationID = meta.Get("specializationId").String()
	}
	entry := h.store.RecordUpload(u)
	return created(uploadResponse{ID: entry.ID, Message: "Your document has been uploaded successfully. (mock)"})
}

func (h documentHandlers) history(req Request) (Response, error) {
	p, l, err := page(req.Query, 10)
	if err != nil {
		return Response{}, err
	}
	dates, err := dateRange(req.Query)
	if err != nil {
		return Response{}, err
	}
	status := models.HistoryStatus(req.Query.Get("status"))
	switch status {
	case "", models.HistoryPending, models.HistoryApproved, models.HistoryRejected:
	default:
		return Response{}, store.InvalidField("status")
	}
	res := h.store.History(store.HistoryFilter{
		Search: req.Query.Get("search"),
		Type:   req.Query.Get("type"),
		Domain: req.Query.Get("domain"),
		Status: status,
		Dates:  dates,
		Page:   p,
		Limit:  l,
	})
	return ok(historyList{
		Documents:  res.Documents,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}

func (h documentHandlers) reReview(req Request) (Response, error) {
	var body reReviewRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	reason := strings.TrimSpace(body.Reason)
	if reason == "" {
		return Response{}, store.ValidationError{Field: "reason", Message: "Reason is required"}
	}
	if utf8.RuneCountInString(reason) < minReasonLength {
		return Response{}, store.ValidationError{Field: "reason", Message: "Reason must be at least 10 characters"}
	}
	if err := h.store.RequestReReview(req.Param("id")); err != nil {
		return Response{}, err
	}
	return message("Your request has been submitted and is under review.")
}
