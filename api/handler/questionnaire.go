package handler

import (
	"net/http"
	"strconv"

	"github.com/dafuqqqyunglean/assign_reviewer/domain"
	questionnaireserv "github.com/dafuqqqyunglean/assign_reviewer/service/questionnaire"
)

func ListQuestionnaires(service questionnaireserv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		query := domain.QuestionnaireQuery{Search: q.Get("search")}

		var err error
		if query.Page, err = optionalInt(q.Get("page")); err != nil {
			domain.NewErrorResponse(w, domain.ErrBadRequest, http.StatusBadRequest)
			return
		}
		if query.PerPage, err = optionalInt(q.Get("per_page")); err != nil {
			domain.NewErrorResponse(w, domain.ErrBadRequest, http.StatusBadRequest)
			return
		}

		resp, err := service.List(r.Context(), query)
		if err != nil {
			writeError(w, err, "failed to list questionnaires")
			return
		}

		writeOK(w, resp)
	}
}

func GetQuestionnaire(service questionnaireserv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.URL.Query().Get("id"))
		if err != nil {
			domain.NewErrorResponse(w, domain.ErrBadRequest, http.StatusBadRequest)
			return
		}

		resp, err := service.Get(r.Context(), id)
		if err != nil {
			writeError(w, err, "failed to get questionnaire")
			return
		}

		writeOK(w, resp)
	}
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	return strconv.Atoi(s)
}
