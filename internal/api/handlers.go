package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Veraticus/finmate/internal/budget"
	"github.com/Veraticus/finmate/internal/common"
	"github.com/Veraticus/finmate/internal/extract"
	"github.com/Veraticus/finmate/internal/llm"
	"github.com/Veraticus/finmate/internal/model"
)

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type parseFieldsRequest struct {
	Text       string `json:"text"`
	TargetForm string `json:"targetForm"`
}

// handleParseFields answers 200 for every extraction, degraded or not.
func (a *API) handleParseFields(w http.ResponseWriter, r *http.Request) {
	var req parseFieldsRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	result, err := a.extractor.Extract(r.Context(), req.Text, extract.ParseTargetForm(req.TargetForm))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}

type allocateRequest struct {
	Role               string  `json:"role"`
	Income             float64 `json:"income"`
	FixedExpensesTotal float64 `json:"fixedExpensesTotal"`
}

func (a *API) handleAllocate(w http.ResponseWriter, r *http.Request) {
	var req allocateRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	role, _ := model.ParseRole(req.Role)
	alloc := budget.Allocate(req.Income, max(req.FixedExpensesTotal, 0), role)
	a.writeJSON(w, http.StatusOK, alloc)
}

type metricsRequest struct {
	Role string `json:"role"`
	budget.MetricInput
}

func (a *API) handleMetrics(w http.ResponseWriter, r *http.Request) {
	var req metricsRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	in := req.MetricInput
	in.Role, _ = model.ParseRole(req.Role)
	a.writeJSON(w, http.StatusOK, budget.Evaluate(in))
}

type suggestionRequest struct {
	Role string `json:"role"`
	llm.SuggestionInput
}

func (a *API) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	in := req.SuggestionInput
	in.Role, _ = model.ParseRole(req.Role)
	a.writeJSON(w, http.StatusOK, a.suggester.Suggest(r.Context(), in))
}

func (a *API) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := a.profiles.Get(r.Context(), mux.Vars(r)["userID"])
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, profile)
}

func (a *API) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var profile model.UserProfile
	if err := decodeBody(r, &profile); err != nil {
		a.writeError(w, err)
		return
	}
	if profile.Role != model.RoleUnset {
		role, ok := model.ParseRole(string(profile.Role))
		if !ok {
			a.writeError(w, common.NewUserError("unknown role "+string(profile.Role), common.ErrInvalidInput))
			return
		}
		profile.Role = role
	}

	saved, err := a.profiles.Save(r.Context(), mux.Vars(r)["userID"], &profile)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, saved)
}

func (a *API) handleAddInvestment(w http.ResponseWriter, r *http.Request) {
	var inv model.Investment
	if err := decodeBody(r, &inv); err != nil {
		a.writeError(w, err)
		return
	}

	saved, err := a.profiles.AddInvestment(r.Context(), mux.Vars(r)["userID"], inv)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, saved)
}

func (a *API) handleAddContribution(w http.ResponseWriter, r *http.Request) {
	var c model.Contribution
	if err := decodeBody(r, &c); err != nil {
		a.writeError(w, err)
		return
	}

	vars := mux.Vars(r)
	goal, err := a.profiles.AddContribution(r.Context(), vars["userID"], vars["goalID"], c)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, goal)
}

func (a *API) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	metrics, err := a.profiles.Portfolio(r.Context(), mux.Vars(r)["userID"])
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, metrics)
}

// handleRoleCategories serves the category ordering for a role. Unknown roles
// get the default ordering.
func (a *API) handleRoleCategories(w http.ResponseWriter, r *http.Request) {
	role, _ := model.ParseRole(mux.Vars(r)["role"])
	a.writeJSON(w, http.StatusOK, map[string]any{
		"role":       role,
		"categories": model.CategoriesForRole(role),
	})
}

func (a *API) handleGoalTemplates(w http.ResponseWriter, r *http.Request) {
	role, _ := model.ParseRole(mux.Vars(r)["role"])
	a.writeJSON(w, http.StatusOK, map[string]any{
		"role":      role,
		"templates": model.GoalTemplatesForRole(role),
	})
}
