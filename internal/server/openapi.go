package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/swisscitizen/prep/internal/places"
	"github.com/swisscitizen/prep/internal/progress"
	"github.com/swisscitizen/prep/internal/quiz"
	"github.com/swisscitizen/prep/internal/swisscitizen"
)

// HealthResponse maps check names to their status.
type HealthResponse map[string]struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type factIDPath struct {
	ID int64 `path:"id"`
}

type factListQuery struct {
	Q        string `query:"q" description:"Case-insensitive text matched against title, content and tags."`
	Category string `query:"category" description:"Category or \"all\"."`
}

type factDeleteQuery struct {
	ID      int64 `path:"id"`
	Confirm bool  `query:"confirm" required:"true" description:"Must be true; unconfirmed deletes return 428."`
}

type factUpdateRequest struct {
	factIDPath
	FactRequest
}

type questionCountQuery struct {
	Category   string `query:"category"`
	Difficulty string `query:"difficulty"`
}

type buildingListQuery struct {
	Category string `query:"category" enum:"all,government,culture,education,transport"`
}

type nearestQuery struct {
	Lat   float64 `query:"lat" description:"Defaults to Zürich."`
	Lng   float64 `query:"lng" description:"Defaults to Zürich."`
	Limit int     `query:"limit" description:"0 returns all buildings."`
}

type buildingIDPath struct {
	ID int `path:"id"`
}

type op struct {
	method, path, summary, description string
	req                                any
	resp                               any
	status                             int
	errors                             []int
	contentType                        string
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "SwissCitizen Prep API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Study backend for the Swiss citizenship test: facts, quiz, progress and map.")

	ops := []op{
		{method: http.MethodGet, path: "/healthz", summary: "Health check",
			description: "Returns the status of the store and the embedded catalogs.",
			resp:        HealthResponse{}, status: http.StatusOK, errors: []int{http.StatusServiceUnavailable}},
		{method: http.MethodGet, path: "/api/topics", summary: "List topics",
			description: "Home page topic tiles.",
			resp:        []swisscitizen.Topic{}, status: http.StatusOK},

		{method: http.MethodGet, path: "/api/facts", summary: "List facts",
			req: factListQuery{}, resp: []swisscitizen.Fact{}, status: http.StatusOK},
		{method: http.MethodPost, path: "/api/facts", summary: "Add fact",
			description: "Title and content are required; tags are comma-separated.",
			req:         FactRequest{}, resp: swisscitizen.Fact{}, status: http.StatusCreated,
			errors: []int{http.StatusBadRequest}},
		{method: http.MethodGet, path: "/api/facts/{id}", summary: "Get fact",
			req: factIDPath{}, resp: swisscitizen.Fact{}, status: http.StatusOK,
			errors: []int{http.StatusBadRequest, http.StatusNotFound}},
		{method: http.MethodPut, path: "/api/facts/{id}", summary: "Update fact",
			description: "Keeps the fact's id and creation time.",
			req:         factUpdateRequest{}, resp: swisscitizen.Fact{}, status: http.StatusOK,
			errors: []int{http.StatusBadRequest, http.StatusNotFound}},
		{method: http.MethodDelete, path: "/api/facts/{id}", summary: "Delete fact",
			req: factDeleteQuery{}, status: http.StatusNoContent,
			errors: []int{http.StatusBadRequest, http.StatusPreconditionRequired}},
		{method: http.MethodGet, path: "/api/facts/export", summary: "Export facts",
			description: "Downloads schweizer-fakten.json. The X-Content-Blake2b header carries the BLAKE2b-256 digest of the body.",
			resp:        []swisscitizen.Fact{}, status: http.StatusOK},
		{method: http.MethodPost, path: "/api/facts/import", summary: "Import facts",
			description: "Appends a JSON array of facts to the collection as-is.",
			req:         []swisscitizen.Fact{}, resp: ImportResponse{}, status: http.StatusOK,
			errors: []int{http.StatusBadRequest}},

		{method: http.MethodGet, path: "/api/quiz", summary: "Quiz state",
			resp: quiz.View{}, status: http.StatusOK},
		{method: http.MethodGet, path: "/api/quiz/questions", summary: "Count questions",
			description: "Number of questions matching the filters.",
			req:         questionCountQuery{}, resp: QuestionCountResponse{}, status: http.StatusOK},
		{method: http.MethodPut, path: "/api/quiz/config", summary: "Configure quiz",
			req: QuizConfigRequest{}, resp: quiz.View{}, status: http.StatusOK,
			errors: []int{http.StatusBadRequest, http.StatusConflict}},
		{method: http.MethodPost, path: "/api/quiz/start", summary: "Start quiz",
			description: "Shuffles the matching questions. Timed runs give each question a countdown.",
			req:         QuizStartRequest{}, resp: quiz.View{}, status: http.StatusOK,
			errors: []int{http.StatusConflict}},
		{method: http.MethodPost, path: "/api/quiz/select", summary: "Select answer",
			req: QuizSelectRequest{}, resp: quiz.View{}, status: http.StatusOK,
			errors: []int{http.StatusBadRequest, http.StatusConflict}},
		{method: http.MethodPost, path: "/api/quiz/confirm", summary: "Confirm answer",
			resp: quiz.View{}, status: http.StatusOK,
			errors: []int{http.StatusBadRequest, http.StatusConflict}},
		{method: http.MethodPost, path: "/api/quiz/next", summary: "Next question",
			description: "After the last question the result is stored and returned.",
			resp:        QuizNextResponse{}, status: http.StatusOK, errors: []int{http.StatusConflict}},
		{method: http.MethodPost, path: "/api/quiz/reset", summary: "Reset quiz",
			description: "Abandons the run without storing a result.",
			resp:        quiz.View{}, status: http.StatusOK},
		{method: http.MethodGet, path: "/api/quiz/events", summary: "Quiz event stream",
			description: "Server-Sent Events for countdown ticks and state changes.",
			status:      http.StatusOK, contentType: "text/event-stream"},
		{method: http.MethodGet, path: "/api/quiz/results", summary: "Quiz history",
			resp: []swisscitizen.QuizResult{}, status: http.StatusOK},

		{method: http.MethodGet, path: "/api/progress", summary: "Progress dashboard",
			resp: progress.Snapshot{}, status: http.StatusOK},

		{method: http.MethodGet, path: "/api/buildings", summary: "List buildings",
			req: buildingListQuery{}, resp: []swisscitizen.Building{}, status: http.StatusOK},
		{method: http.MethodGet, path: "/api/buildings/nearest", summary: "Nearest buildings",
			req: nearestQuery{}, resp: []places.Distance{}, status: http.StatusOK,
			errors: []int{http.StatusBadRequest}},
		{method: http.MethodGet, path: "/api/buildings/explored", summary: "Explored buildings",
			resp: []int{}, status: http.StatusOK},
		{method: http.MethodGet, path: "/api/buildings/{id}", summary: "Get building",
			req: buildingIDPath{}, resp: swisscitizen.Building{}, status: http.StatusOK,
			errors: []int{http.StatusBadRequest, http.StatusNotFound}},
		{method: http.MethodPost, path: "/api/buildings/{id}/explore", summary: "Mark building explored",
			req: buildingIDPath{}, resp: ExploreResponse{}, status: http.StatusOK,
			errors: []int{http.StatusBadRequest, http.StatusNotFound}},

		{method: http.MethodGet, path: "/api/preferences", summary: "Get preferences",
			resp: PreferencesResponse{}, status: http.StatusOK},
		{method: http.MethodPut, path: "/api/preferences/dark-mode", summary: "Set dark mode",
			req: DarkModeRequest{}, resp: PreferencesResponse{}, status: http.StatusOK,
			errors: []int{http.StatusBadRequest}},
		{method: http.MethodPost, path: "/api/preferences/dark-mode/toggle", summary: "Toggle dark mode",
			resp: PreferencesResponse{}, status: http.StatusOK},
	}

	for _, o := range ops {
		oc, err := r.NewOperationContext(o.method, o.path)
		if err != nil {
			continue
		}
		oc.SetSummary(o.summary)
		if o.description != "" {
			oc.SetDescription(o.description)
		}
		if o.req != nil {
			oc.AddReqStructure(o.req)
		}
		if o.contentType != "" {
			oc.AddRespStructure(nil, openapi.WithHTTPStatus(o.status), openapi.WithContentType(o.contentType))
		} else {
			oc.AddRespStructure(o.resp, openapi.WithHTTPStatus(o.status))
		}
		for _, status := range o.errors {
			oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(status))
		}
		_ = r.AddOperation(oc)
	}

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
