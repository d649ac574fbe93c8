package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/pprofhandler"

	apiHandler "github.com/fastygo/journal/api/handler"
	"github.com/fastygo/journal/internal/metrics"
)

type Handlers struct {
	Health       *apiHandler.HealthHandler
	Messaging    *apiHandler.MessagingHandler
	Friendship   *apiHandler.FriendshipHandler
	Notification *apiHandler.NotificationHandler
	Moodboard    *apiHandler.MoodboardHandler
	Board        *apiHandler.BoardHandler
	Tableau      *apiHandler.TableauHandler
	Reward       *apiHandler.RewardHandler
	Post         *apiHandler.PostHandler
	Mood         *apiHandler.MoodHandler
}

type Options struct {
	Metrics     *metrics.Registry
	MetricsPath string
	EnablePprof bool
}

type routes struct {
	r       *router.Router
	auth    func(fasthttp.RequestHandler) fasthttp.RequestHandler
	metrics *metrics.Registry
}

// handle registers a protected route, instrumented by its pattern when metrics are on.
func (rt routes) handle(method, path string, h fasthttp.RequestHandler) {
	h = rt.auth(h)
	if rt.metrics != nil {
		h = rt.metrics.Instrument(path, h)
	}
	rt.r.Handle(method, path, h)
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler, opts Options) *router.Router {
	r := router.New()
	rt := routes{r: r, auth: authMiddleware, metrics: opts.Metrics}

	r.GET("/health", handlers.Health.Check)
	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, opts.Metrics.Handler())
	}
	if opts.EnablePprof {
		r.ANY("/debug/pprof/{profile:*}", pprofhandler.PprofHandler)
	}

	const get, post, put, patch, del = fasthttp.MethodGet, fasthttp.MethodPost, fasthttp.MethodPut, fasthttp.MethodPatch, fasthttp.MethodDelete

	// Messaging
	m := handlers.Messaging
	rt.handle(post, "/api/v1/messages", m.SendDirect)
	rt.handle(patch, "/api/v1/messages/{id}", m.Edit)
	rt.handle(del, "/api/v1/messages/{id}", m.Delete)
	rt.handle(post, "/api/v1/messages/{id}/reactions", m.React)
	rt.handle(get, "/api/v1/conversations", m.ListConversations)
	rt.handle(get, "/api/v1/conversations/{id}", m.GetConversation)
	rt.handle(del, "/api/v1/conversations/{id}", m.DeleteConversation)
	rt.handle(get, "/api/v1/conversations/{id}/messages", m.ListMessages)
	rt.handle(post, "/api/v1/conversations/{id}/messages", m.Send)
	rt.handle(post, "/api/v1/conversations/{id}/read", m.MarkRead)

	// Friends
	f := handlers.Friendship
	rt.handle(post, "/api/v1/friend-requests", f.Send)
	rt.handle(get, "/api/v1/friend-requests", f.List)
	rt.handle(get, "/api/v1/friend-requests/{id}", f.Get)
	rt.handle(del, "/api/v1/friend-requests/{id}", f.Cancel)
	rt.handle(post, "/api/v1/friend-requests/{id}/accept", f.Accept)
	rt.handle(post, "/api/v1/friend-requests/{id}/reject", f.Reject)

	// Notifications
	n := handlers.Notification
	rt.handle(get, "/api/v1/notifications", n.List)
	rt.handle(get, "/api/v1/notifications/unread-count", n.UnreadCount)
	rt.handle(post, "/api/v1/notifications/read-all", n.MarkAllRead)
	rt.handle(get, "/api/v1/notifications/preferences", n.GetPreferences)
	rt.handle(patch, "/api/v1/notifications/preferences", n.UpdatePreferences)
	rt.handle(get, "/api/v1/notifications/{id}", n.Get)
	rt.handle(del, "/api/v1/notifications/{id}", n.Delete)
	rt.handle(post, "/api/v1/notifications/{id}/read", n.MarkRead)
	rt.handle(post, "/api/v1/push-tokens", n.RegisterPushToken)
	rt.handle(del, "/api/v1/push-tokens/{token}", n.RemovePushToken)

	// Moodboards
	mb := handlers.Moodboard
	rt.handle(post, "/api/v1/moodboards", mb.Create)
	rt.handle(get, "/api/v1/moodboards", mb.List)
	rt.handle(post, "/api/v1/moodboards/upload-url", mb.UploadURL)
	rt.handle(get, "/api/v1/moodboards/{id}", mb.Get)
	rt.handle(patch, "/api/v1/moodboards/{id}", mb.Update)
	rt.handle(del, "/api/v1/moodboards/{id}", mb.Delete)
	rt.handle(post, "/api/v1/moodboards/{id}/pins", mb.AddPin)
	rt.handle(del, "/api/v1/moodboards/{id}/pins/{pinId}", mb.RemovePin)
	rt.handle(post, "/api/v1/moodboards/{id}/pins/{pinId}/move", mb.MovePin)

	// Boards
	b := handlers.Board
	rt.handle(post, "/api/v1/boards", b.Create)
	rt.handle(get, "/api/v1/boards", b.List)
	rt.handle(get, "/api/v1/boards/{id}", b.Get)
	rt.handle(patch, "/api/v1/boards/{id}", b.Rename)
	rt.handle(del, "/api/v1/boards/{id}", b.Delete)
	rt.handle(post, "/api/v1/boards/{id}/columns", b.AddColumn)
	rt.handle(patch, "/api/v1/boards/{id}/columns/{columnId}", b.RenameColumn)
	rt.handle(del, "/api/v1/boards/{id}/columns/{columnId}", b.RemoveColumn)
	rt.handle(post, "/api/v1/boards/{id}/columns/{columnId}/move", b.MoveColumn)
	rt.handle(post, "/api/v1/boards/{id}/columns/{columnId}/cards", b.AddCard)
	rt.handle(post, "/api/v1/boards/{id}/cards/{cardId}/move", b.MoveCard)
	rt.handle(del, "/api/v1/boards/{id}/cards/{cardId}", b.RemoveCard)

	// Tableaux
	t := handlers.Tableau
	rt.handle(post, "/api/v1/tableaux", t.Create)
	rt.handle(get, "/api/v1/tableaux", t.List)
	rt.handle(get, "/api/v1/tableaux/{id}", t.Get)
	rt.handle(patch, "/api/v1/tableaux/{id}", t.Rename)
	rt.handle(del, "/api/v1/tableaux/{id}", t.Delete)
	rt.handle(post, "/api/v1/tableaux/{id}/rows", t.AddRow)
	rt.handle(put, "/api/v1/tableaux/{id}/rows/{rowId}", t.UpdateRow)
	rt.handle(del, "/api/v1/tableaux/{id}/rows/{rowId}", t.RemoveRow)
	rt.handle(post, "/api/v1/tableaux/{id}/rows/{rowId}/move", t.MoveRow)

	// Rewards
	rw := handlers.Reward
	rt.handle(get, "/api/v1/achievements", rw.Achievements)
	rt.handle(post, "/api/v1/rewards", rw.Award)
	rt.handle(get, "/api/v1/rewards", rw.List)
	rt.handle(get, "/api/v1/rewards/{id}", rw.Get)
	rt.handle(put, "/api/v1/rewards/{id}", rw.Update)

	// Posts
	p := handlers.Post
	rt.handle(post, "/api/v1/posts", p.Create)
	rt.handle(get, "/api/v1/posts", p.Feed)
	rt.handle(get, "/api/v1/posts/{id}", p.Get)
	rt.handle(put, "/api/v1/posts/{id}", p.Update)
	rt.handle(del, "/api/v1/posts/{id}", p.Delete)
	rt.handle(post, "/api/v1/posts/{id}/reactions", p.React)
	rt.handle(post, "/api/v1/posts/{id}/comments", p.AddComment)
	rt.handle(get, "/api/v1/posts/{id}/comments", p.ListComments)
	rt.handle(del, "/api/v1/comments/{id}", p.DeleteComment)

	// Moods
	md := handlers.Mood
	rt.handle(post, "/api/v1/moods", md.Log)
	rt.handle(get, "/api/v1/moods", md.List)
	rt.handle(get, "/api/v1/moods/{id}", md.Get)
	rt.handle(put, "/api/v1/moods/{id}", md.Update)
	rt.handle(del, "/api/v1/moods/{id}", md.Delete)

	return r
}
