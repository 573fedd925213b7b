package transport

import (
	"bytes"
	"net/http"
	"time"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/Lilw3n/multisite-platform-sub002/internal/export"
	"github.com/go-chi/chi/v5"
)

type createProjectBody struct {
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Type           project.Type     `json:"type"`
	Status         project.Status   `json:"status"`
	Priority       project.Priority `json:"priority"`
	ParentID       *string          `json:"parentId"`
	InterlocutorID *string          `json:"interlocutorId"`
	Tags           []project.Tag    `json:"tags"`
	Members        []project.Member `json:"members"`
	Items          []project.Item   `json:"items"`
	Files          []project.File   `json:"files"`
	StartDate      *time.Time       `json:"startDate"`
	EndDate        *time.Time       `json:"endDate"`
}

type updateProjectBody struct {
	Name           *string           `json:"name"`
	Description    *string           `json:"description"`
	Type           *project.Type     `json:"type"`
	Status         *project.Status   `json:"status"`
	Priority       *project.Priority `json:"priority"`
	InterlocutorID *string           `json:"interlocutorId"`
	Tags           *[]project.Tag    `json:"tags"`
	Members        *[]project.Member `json:"members"`
	Items          *[]project.Item   `json:"items"`
	Files          *[]project.File   `json:"files"`
	StartDate      *time.Time        `json:"startDate"`
	EndDate        *time.Time        `json:"endDate"`
}

type moveBody struct {
	TargetID  string                `json:"targetId"`
	Operation project.MoveOperation `json:"operation"`
}

type itemBody struct {
	Type        project.ItemType   `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      project.ItemStatus `json:"status"`
	Metadata    map[string]any     `json:"metadata"`
}

type listResponse struct {
	Projects []project.Project `json:"projects"`
	Total    int               `json:"total"`
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := parseFilter(q)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	sortOpts, err := parseSort(q)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	projects := s.projects.List(r.Context(), filter, sortOpts)
	WriteJSON(w, http.StatusOK, listResponse{Projects: projects, Total: len(projects)})
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var body createProjectBody
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, s.logger, err)
		return
	}
	proj, err := s.projects.Create(r.Context(), project.CreateRequest{
		Name:           body.Name,
		Description:    body.Description,
		Type:           body.Type,
		Status:         body.Status,
		Priority:       body.Priority,
		ParentID:       body.ParentID,
		InterlocutorID: body.InterlocutorID,
		Tags:           body.Tags,
		Members:        body.Members,
		Items:          body.Items,
		Files:          body.Files,
		StartDate:      body.StartDate,
		EndDate:        body.EndDate,
	})
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	w.Header().Set("Location", "/api/v1/projects/"+proj.ID)
	WriteJSON(w, http.StatusCreated, proj)
}

func (s *Server) projectTree(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, s.projects.GetTree(r.Context(), filter))
}

func (s *Server) searchProjects(w http.ResponseWriter, r *http.Request) {
	projects := s.projects.Search(r.Context(), r.URL.Query().Get("q"))
	WriteJSON(w, http.StatusOK, listResponse{Projects: projects, Total: len(projects)})
}

func (s *Server) statistics(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, s.projects.GetStatistics(r.Context()))
}

func (s *Server) recentActivity(w http.ResponseWriter, r *http.Request) {
	opts, err := parseActivityOptions(r.URL.Query())
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, s.projects.RecentActivity(r.Context(), opts))
}

func (s *Server) exportProjects(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	var buf bytes.Buffer
	if err := export.Write(r.Context(), s.projects, filter, &buf); err != nil {
		WriteError(w, s.logger, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="projects.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, proj)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var body updateProjectBody
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, s.logger, err)
		return
	}
	proj, err := s.projects.Update(r.Context(), chi.URLParam(r, "id"), project.UpdateRequest{
		Name:           body.Name,
		Description:    body.Description,
		Type:           body.Type,
		Status:         body.Status,
		Priority:       body.Priority,
		InterlocutorID: body.InterlocutorID,
		Tags:           body.Tags,
		Members:        body.Members,
		Items:          body.Items,
		Files:          body.Files,
		StartDate:      body.StartDate,
		EndDate:        body.EndDate,
	})
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, proj)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) moveProject(w http.ResponseWriter, r *http.Request) {
	var body moveBody
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, s.logger, err)
		return
	}
	proj, err := s.projects.Move(r.Context(), chi.URLParam(r, "id"), body.TargetID, body.Operation)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, proj)
}

func (s *Server) navigation(w http.ResponseWriter, r *http.Request) {
	nav, err := s.projects.GetNavigation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, nav)
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var body itemBody
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, s.logger, err)
		return
	}
	item, err := s.projects.AddItem(r.Context(), chi.URLParam(r, "id"), project.ItemInput{
		Type:        body.Type,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Metadata:    body.Metadata,
	})
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, item)
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID")); err != nil {
		WriteError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
