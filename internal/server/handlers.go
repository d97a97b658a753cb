package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lucas/resume-studio/internal/generation"
	"github.com/lucas/resume-studio/internal/ingestion"
	"github.com/lucas/resume-studio/internal/llm"
	"github.com/lucas/resume-studio/internal/server/middleware"
	"github.com/lucas/resume-studio/internal/types"
)

// generationConfig assembles the per-call model selection plus the
// caller's stored credentials. Constructed fresh each request, never
// cached.
func (s *Server) generationConfig(r *http.Request, model string) (llm.GenerationConfig, error) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		return llm.GenerationConfig{}, err
	}

	stored, err := s.db.ListCredentials(r.Context(), userID)
	if err != nil {
		return llm.GenerationConfig{}, err
	}

	creds := make([]llm.Credential, 0, len(stored))
	for _, c := range stored {
		creds = append(creds, llm.Credential{
			Service: c.Service,
			Key:     c.APIKey,
			AddedAt: c.AddedAt,
		})
	}

	return llm.GenerationConfig{Model: model, Credentials: creds}, nil
}

// decodeJSON decodes a request body, writing a 400 on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

type tailorResumeRequest struct {
	Model  string       `json:"model"`
	Resume types.Resume `json:"resume"`
	Job    types.Job    `json:"job"`
}

func (s *Server) handleTailorResume(w http.ResponseWriter, r *http.Request) {
	var req tailorResumeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	cfg, err := s.generationConfig(r, req.Model)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	tailored, err := s.gen.TailorResume(r.Context(), cfg, req.Resume, req.Job)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, tailored)
}

type parseJobRequest struct {
	Model string `json:"model"`
	// Exactly one of Text or URL must be set; URL fetches the listing
	// before parsing.
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

func (s *Server) handleParseJob(w http.ResponseWriter, r *http.Request) {
	var req parseJobRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if (req.Text == "") == (req.URL == "") {
		s.errorResponse(w, http.StatusBadRequest, "exactly one of text or url is required")
		return
	}
	cfg, err := s.generationConfig(r, req.Model)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	text := req.Text
	jobURL := ""
	if req.URL != "" {
		page, err := ingestion.FetchListingText(r.Context(), req.URL, nil)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, err.Error())
			return
		}
		text = page.Text
		jobURL = req.URL
	}

	job, err := s.gen.ParseJobListing(r.Context(), cfg, text)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if jobURL != "" && job.JobURL == "" {
		job.JobURL = jobURL
	}
	s.jsonResponse(w, http.StatusOK, job)
}

type pointsRequest struct {
	Model string `json:"model"`
	generation.PointsRequest
	JobDescription string `json:"job_description,omitempty"`
}

func (s *Server) handleWorkExperiencePoints(w http.ResponseWriter, r *http.Request) {
	s.handlePoints(w, r, s.gen.GenerateWorkExperiencePoints)
}

func (s *Server) handleProjectPoints(w http.ResponseWriter, r *http.Request) {
	s.handlePoints(w, r, s.gen.GenerateProjectPoints)
}

func (s *Server) handlePoints(
	w http.ResponseWriter,
	r *http.Request,
	generate func(ctx context.Context, cfg llm.GenerationConfig, req generation.PointsRequest) (*generation.BulletPoints, error),
) {
	var req pointsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	cfg, err := s.generationConfig(r, req.Model)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	req.PointsRequest.JobDescription = req.JobDescription
	points, err := generate(r.Context(), cfg, req.PointsRequest)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, points)
}

type improvePointRequest struct {
	Model   string `json:"model"`
	Point   string `json:"point"`
	Context string `json:"context,omitempty"`
}

func (s *Server) handleImproveWorkExperiencePoint(w http.ResponseWriter, r *http.Request) {
	s.handleImprovePoint(w, r, s.gen.ImproveWorkExperiencePoint)
}

func (s *Server) handleImproveProjectPoint(w http.ResponseWriter, r *http.Request) {
	s.handleImprovePoint(w, r, s.gen.ImproveProjectPoint)
}

func (s *Server) handleImprovePoint(
	w http.ResponseWriter,
	r *http.Request,
	improve func(ctx context.Context, cfg llm.GenerationConfig, point, extra string) (string, error),
) {
	var req improvePointRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Point == "" {
		s.errorResponse(w, http.StatusBadRequest, "point is required")
		return
	}
	cfg, err := s.generationConfig(r, req.Model)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	improved, err := improve(r.Context(), cfg, req.Point, req.Context)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"point": improved})
}

type modifyExperienceRequest struct {
	Model       string               `json:"model"`
	Experience  types.WorkExperience `json:"experience"`
	Instruction string               `json:"instruction"`
}

func (s *Server) handleModifyExperience(w http.ResponseWriter, r *http.Request) {
	var req modifyExperienceRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Instruction == "" {
		s.errorResponse(w, http.StatusBadRequest, "instruction is required")
		return
	}
	cfg, err := s.generationConfig(r, req.Model)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	modified, err := s.gen.ModifyWorkExperience(r.Context(), cfg, req.Experience, req.Instruction)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, modified)
}

type formatProfileRequest struct {
	Model   string `json:"model"`
	Content string `json:"content"`
}

func (s *Server) handleFormatProfile(w http.ResponseWriter, r *http.Request) {
	var req formatProfileRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	cfg, err := s.generationConfig(r, req.Model)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	profile, err := s.gen.FormatProfile(r.Context(), cfg, req.Content)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

type importTextRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

func (s *Server) handleImportText(w http.ResponseWriter, r *http.Request) {
	var req importTextRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	cfg, err := s.generationConfig(r, req.Model)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	profile, err := s.gen.ImportText(r.Context(), cfg, req.Text)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

type importProfileRequest struct {
	Model      string        `json:"model"`
	Profile    types.Profile `json:"profile"`
	TargetRole string        `json:"target_role,omitempty"`
}

func (s *Server) handleImportProfile(w http.ResponseWriter, r *http.Request) {
	var req importProfileRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	cfg, err := s.generationConfig(r, req.Model)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	resume, err := s.gen.ImportProfile(r.Context(), cfg, req.Profile, req.TargetRole)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

type mergeTextRequest struct {
	Model  string       `json:"model"`
	Text   string       `json:"text"`
	Resume types.Resume `json:"resume"`
}

func (s *Server) handleMergeText(w http.ResponseWriter, r *http.Request) {
	var req mergeTextRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Text == "" {
		s.errorResponse(w, http.StatusBadRequest, "text is required")
		return
	}
	cfg, err := s.generationConfig(r, req.Model)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	merged, err := s.gen.MergeTextIntoResume(r.Context(), cfg, req.Text, &req.Resume)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, merged)
}

type suggestSectionsRequest struct {
	Model          string        `json:"model"`
	Profile        types.Profile `json:"profile"`
	JobDescription string        `json:"job_description"`
}

func (s *Server) handleSuggestSections(w http.ResponseWriter, r *http.Request) {
	var req suggestSectionsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	cfg, err := s.generationConfig(r, req.Model)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	suggestions, err := s.gen.SuggestSections(r.Context(), cfg, req.Profile, req.JobDescription)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, suggestions)
}

// handleListModels returns the static model catalog.
func (s *Server) handleListModels(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"models": llm.Models()})
}
