package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/api/version/", h.getServerVersion)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.withTraceID, h.withLogging, withGZip)

		r.Route("/api/notes", func(r chi.Router) {
			r.Post("/", h.createNote)
			r.Get("/", h.listNotes)

			// trash endpoints come before /{id} so chi does not try to
			// parse "trash" as a note id
			r.Get("/trash", h.listTrash)
			r.Delete("/trash", h.emptyTrash)
			r.Post("/restore", h.bulkRestore)
			r.Post("/purge", h.bulkPurge)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getNote)
				r.Put("/", h.updateNote)
				r.Delete("/", h.trashNote)
				r.Put("/restore", h.restoreNote)
				r.Delete("/purge", h.purgeNote)
				r.Put("/folder", h.setNoteFolder)
				r.Post("/star", h.starNote)

				r.Post("/shares", h.shareNote)
				r.Get("/shares", h.listNoteShares)
				r.Delete("/shares/{userID}", h.unshareNote)
			})
		})

		r.Route("/api/teams", func(r chi.Router) {
			r.Post("/", h.createTeam)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getTeam)
				r.Get("/notes", h.listTeamNotes)
				r.Get("/folders", h.listTeamFolders)
				r.Get("/activity", h.listTeamActivity)

				r.Post("/members", h.addTeamMember)
				r.Put("/members/{userID}", h.updateTeamMember)
				r.Delete("/members/{userID}", h.removeTeamMember)
			})
		})

		r.Route("/api/folders", func(r chi.Router) {
			r.Post("/", h.createFolder)
			r.Get("/", h.listFolders)
			r.Put("/{id}", h.renameFolder)
			r.Delete("/{id}", h.deleteFolder)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
