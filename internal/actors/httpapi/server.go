package httpapi

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mtorres/eventia/internal/core/model"
)

// ServerArgs are the mandatory args to instantiate the Server.
type ServerArgs struct {
	// Directory is the user directory usecase.
	Directory directoryUsecase

	// Catalog is the event catalog usecase.
	Catalog catalogUsecase

	// Tracker is the participation tracker usecase.
	Tracker trackerUsecase

	// Engagement is the engagement usecase.
	Engagement engagementUsecase

	// Notifications is the notification log usecase.
	Notifications notificationsUsecase

	// Ranking is the chat ranking usecase.
	Ranking rankingUsecase
}

// NewServer creates a new Server.
func NewServer(args ServerArgs) *Server {
	return &Server{
		directory:     args.Directory,
		catalog:       args.Catalog,
		tracker:       args.Tracker,
		engagement:    args.Engagement,
		notifications: args.Notifications,
		ranking:       args.Ranking,
	}
}

// Server is the thin HTTP facade over the core services. It owns no state and
// no invariants: every request is resolved against the current core state.
type Server struct {
	directory     directoryUsecase
	catalog       catalogUsecase
	tracker       trackerUsecase
	engagement    engagementUsecase
	notifications notificationsUsecase
	ranking       rankingUsecase
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(s.withViewer())

	v1 := r.Group("/api/v1")

	v1.POST("/users", s.register)
	v1.POST("/auth/login", s.login)
	v1.GET("/users/:id", s.getUser)
	v1.GET("/users/:id/badges", s.listBadges)
	v1.PUT("/users/:id/profile", s.completeProfile)
	v1.PUT("/users/:id/username", s.rename)
	v1.PUT("/users/:id/photo", s.setProfilePhoto)

	v1.POST("/friend-requests", s.sendFriendRequest)
	v1.POST("/friend-requests/:sender_id/accept", s.acceptFriendRequest)
	v1.POST("/friend-requests/:sender_id/reject", s.rejectFriendRequest)
	v1.GET("/friends", s.listFriends)

	v1.POST("/messages", s.appendMessage)
	v1.GET("/messages/:username", s.transcript)

	v1.POST("/events", s.createEvent)
	v1.GET("/events", s.listEvents)
	v1.GET("/events/search", s.searchEvents)
	v1.GET("/events/top", s.listEventsByLikes)
	v1.GET("/events/:id", s.getEvent)
	v1.PUT("/events/:id", s.updateEvent)
	v1.DELETE("/events/:id", s.removeEvent)

	v1.POST("/events/:id/join", s.joinEvent)
	v1.POST("/events/:id/leave", s.leaveEvent)
	v1.GET("/events/:id/participants", s.listParticipants)
	v1.GET("/events/:id/permission", s.permission)
	v1.PUT("/events/:id/presence", s.setPresence)

	v1.POST("/events/:id/likes/toggle", s.toggleEventLike)
	v1.POST("/events/:id/comments", s.addEventComment)
	v1.GET("/events/:id/comments", s.listEventComments)

	v1.POST("/events/:id/photos", s.addPhoto)
	v1.GET("/events/:id/photos", s.listPhotos)
	v1.DELETE("/events/:id/photos", s.removePhoto)
	v1.POST("/events/:id/photos/likes/toggle", s.togglePhotoLike)
	v1.POST("/events/:id/photos/comments", s.addPhotoComment)
	v1.DELETE("/events/:id/photos/comments", s.removePhotoComment)

	v1.POST("/events/:id/ranking", s.leaderboard)
	v1.POST("/events/:id/broadcast", s.broadcast)

	v1.GET("/notifications", s.listNotifications)

	return r
}

// directoryUsecase is the slice of the user directory the facade calls.
type directoryUsecase interface {
	Register(ctx context.Context, args model.RegisterArgs) (*model.RegisterResponse, error)
	Authenticate(ctx context.Context, args model.AuthenticateArgs) (*model.AuthenticateResponse, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	CompleteProfile(ctx context.Context, args model.CompleteProfileArgs) (*model.User, error)
	Rename(ctx context.Context, userID int64, newUsername string) (*model.User, error)
	SetProfilePhoto(ctx context.Context, userID int64, ref string) error
	SendFriendRequest(ctx context.Context, fromID, toID int64) error
	AcceptFriendRequest(ctx context.Context, receiverID, senderID int64) error
	RejectFriendRequest(ctx context.Context, receiverID, senderID int64) error
	ListFriends(ctx context.Context, userID int64) ([]model.User, error)
	AppendMessage(ctx context.Context, args model.AppendMessageArgs) error
	Transcript(ctx context.Context, userID int64, otherUsername string) ([]model.ChatMessage, error)
	Badges(ctx context.Context, userID int64) ([]model.Badge, error)
}

// catalogUsecase is the slice of the event catalog the facade calls.
type catalogUsecase interface {
	Create(ctx context.Context, args model.CreateEventArgs) (*model.CreateEventResponse, error)
	Update(ctx context.Context, args model.UpdateEventArgs) (*model.UpdateEventResponse, error)
	Remove(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*model.Event, error)
	ListPublic(ctx context.Context) ([]model.Event, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]model.Event, error)
	ListVisibleTo(ctx context.Context, viewer *model.User) ([]model.Event, error)
	Search(ctx context.Context, term string, viewer *model.User) ([]model.Event, error)
	SearchByDate(ctx context.Context, date time.Time, viewer *model.User) ([]model.Event, error)
	SearchByCategory(ctx context.Context, category string, viewer *model.User) ([]model.Event, error)
	ListByLikes(ctx context.Context) ([]model.Event, error)
}

// trackerUsecase is the slice of the participation tracker the facade calls.
type trackerUsecase interface {
	Join(ctx context.Context, eventID, userID int64) (bool, error)
	Leave(ctx context.Context, eventID, userID int64) (bool, error)
	Participants(ctx context.Context, eventID int64) ([]int64, error)
	SetPresence(ctx context.Context, eventID, userID int64, present bool) error
	Presence(ctx context.Context, eventID, userID int64) (bool, error)
	Permission(ctx context.Context, eventID, userID int64) (model.Permission, error)
}

// engagementUsecase is the slice of the engagement service the facade calls.
type engagementUsecase interface {
	ToggleEventLike(ctx context.Context, eventID, userID int64) (*model.ToggleLikeResponse, error)
	AddEventComment(ctx context.Context, eventID, authorID int64, text string) error
	EventComments(ctx context.Context, eventID int64) ([]model.Comment, error)
	AddPhoto(ctx context.Context, eventID int64, ref string) (string, error)
	RemovePhoto(ctx context.Context, eventID int64, ref string) (bool, error)
	Photos(ctx context.Context, eventID int64) ([]model.Photo, error)
	TogglePhotoLike(ctx context.Context, eventID int64, ref string, userID int64) (*model.ToggleLikeResponse, error)
	AddPhotoComment(ctx context.Context, args model.AddPhotoCommentArgs) error
	RemovePhotoComment(ctx context.Context, args model.RemovePhotoCommentArgs) (bool, error)
}

// notificationsUsecase is the slice of the notification log the facade calls.
type notificationsUsecase interface {
	List(ctx context.Context, userID int64, typ model.NotificationType) ([]model.Notification, error)
	BroadcastToParticipants(ctx context.Context, args model.BroadcastArgs) error
}

// rankingUsecase is the slice of the chat ranking engine the facade calls.
type rankingUsecase interface {
	Leaderboard(ctx context.Context, args model.LeaderboardArgs) (*model.LeaderboardResponse, error)
}
