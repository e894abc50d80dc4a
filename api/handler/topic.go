package handler

import (
	"net/http"

	"github.com/dafuqqqyunglean/assign_reviewer/domain"
	rosterserv "github.com/dafuqqqyunglean/assign_reviewer/service/roster"
)

func ListTopics(service rosterserv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := service.ListTopics(r.Context())
		if err != nil {
			writeError(w, err, "failed to list topics")
			return
		}

		writeOK(w, resp)
	}
}

func GetTopic(service rosterserv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic := r.URL.Query().Get("topic")

		resp, err := service.GetTopic(r.Context(), topic)
		if err != nil {
			writeError(w, err, "failed to get topic")
			return
		}

		writeOK(w, resp)
	}
}

func Stats(service rosterserv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := service.Stats(r.Context())
		if err != nil {
			writeError(w, err, "failed to collect stats")
			return
		}

		writeOK(w, resp)
	}
}

func AddReviewer(service rosterserv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.AddReviewerRequest
		if !decode(w, r, &req, "add reviewer") {
			return
		}

		resp, err := service.AddReviewer(r.Context(), req)
		if err != nil {
			writeError(w, err, "failed to add reviewer")
			return
		}

		writeOK(w, resp)
	}
}

func Unsubmit(service rosterserv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.ReviewerRequest
		if !decode(w, r, &req, "unsubmit") {
			return
		}

		resp, err := service.Unsubmit(r.Context(), req)
		if err != nil {
			writeError(w, err, "failed to unsubmit review")
			return
		}

		writeOK(w, resp)
	}
}

func RemoveReviewer(service rosterserv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.ReviewerRequest
		if !decode(w, r, &req, "remove reviewer") {
			return
		}

		resp, err := service.RemoveReviewer(r.Context(), req)
		if err != nil {
			writeError(w, err, "failed to remove reviewer")
			return
		}

		writeOK(w, resp)
	}
}
