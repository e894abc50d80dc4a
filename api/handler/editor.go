package handler

import (
	"net/http"

	"github.com/dafuqqqyunglean/assign_reviewer/domain"
	editorserv "github.com/dafuqqqyunglean/assign_reviewer/service/editor"
)

func OpenEditor(service editorserv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.OpenEditorRequest
		if !decode(w, r, &req, "open editor") {
			return
		}

		resp, err := service.Open(r.Context(), req.Topic)
		if err != nil {
			writeError(w, err, "failed to open editor")
			return
		}

		writeOK(w, resp)
	}
}

func SubmitEditor(service editorserv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SubmitEditorRequest
		if !decode(w, r, &req, "submit editor") {
			return
		}

		resp, err := service.Submit(r.Context(), req)
		if err != nil {
			writeError(w, err, "failed to submit editor")
			return
		}

		writeOK(w, resp)
	}
}

func CancelEditor(service editorserv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CancelEditorRequest
		if !decode(w, r, &req, "cancel editor") {
			return
		}

		resp, err := service.Cancel(r.Context(), req.SessionID)
		if err != nil {
			writeError(w, err, "failed to cancel editor")
			return
		}

		writeOK(w, resp)
	}
}
