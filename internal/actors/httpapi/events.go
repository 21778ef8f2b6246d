package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mtorres/eventia/internal/core/model"
)

type eventRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	StartsAt    time.Time      `json:"starts_at"`
	Category    string         `json:"category"`
	Speaker     string         `json:"speaker"`
	Private     bool           `json:"private"`
	ImageRef    string         `json:"image_ref"`
	Badge       *model.Badge   `json:"badge"`
	Modality    model.Modality `json:"modality"`
}

func (s *Server) createEvent(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := s.catalog.Create(c.Request.Context(), model.CreateEventArgs{
		OrganizerID: user.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		Category:    req.Category,
		Speaker:     req.Speaker,
		Private:     req.Private,
		ImageRef:    req.ImageRef,
		Badge:       req.Badge,
		Modality:    req.Modality,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": resp.Event})
}

func (s *Server) updateEvent(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !s.requireOrganizer(c, id, user.ID) {
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := s.catalog.Update(c.Request.Context(), model.UpdateEventArgs{
		ID:          id,
		OrganizerID: user.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		Category:    req.Category,
		Speaker:     req.Speaker,
		Private:     req.Private,
		ImageRef:    req.ImageRef,
		Badge:       req.Badge,
		Modality:    req.Modality,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": resp.Event})
}

func (s *Server) removeEvent(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !s.requireOrganizer(c, id, user.ID) {
		return
	}
	removed, err := s.catalog.Remove(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (s *Server) getEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	event, err := s.catalog.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// listEvents lists events. The scope query parameter selects between the
// viewer-visible listing (default), "public" and "upcoming".
func (s *Server) listEvents(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		events []model.Event
		err    error
	)
	switch c.Query("scope") {
	case "public":
		events, err = s.catalog.ListPublic(ctx)
	case "upcoming":
		events, err = s.catalog.ListUpcoming(ctx, time.Now())
	default:
		events, err = s.catalog.ListVisibleTo(ctx, viewer(c))
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// searchEvents searches by free text (q), day (date, RFC 3339 or 2006-01-02)
// or category. The filters are alternatives, checked in that order.
func (s *Server) searchEvents(c *gin.Context) {
	ctx := c.Request.Context()
	v := viewer(c)
	if date := c.Query("date"); date != "" {
		day, err := parseDay(date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		events, err := s.catalog.SearchByDate(ctx, day, v)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
		return
	}
	if category := c.Query("category"); category != "" {
		events, err := s.catalog.SearchByCategory(ctx, category, v)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
		return
	}
	events, err := s.catalog.Search(ctx, c.Query("q"), v)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (s *Server) listEventsByLikes(c *gin.Context) {
	events, err := s.catalog.ListByLikes(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// requireOrganizer checks the event exists and is organized by userID.
// Callers must return immediately when the result is false.
func (s *Server) requireOrganizer(c *gin.Context, eventID, userID int64) bool {
	event, err := s.catalog.FindByID(c.Request.Context(), eventID)
	if err != nil {
		fail(c, err)
		return false
	}
	if event.OrganizerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the organizer may do that"})
		return false
	}
	return true
}

func (s *Server) joinEvent(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	joined, err := s.tracker.Join(c.Request.Context(), id, user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"joined": joined})
}

func (s *Server) leaveEvent(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	left, err := s.tracker.Leave(c.Request.Context(), id, user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"left": left})
}

func (s *Server) listParticipants(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ids, err := s.tracker.Participants(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participants": ids})
}

func (s *Server) permission(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	perm, err := s.tracker.Permission(c.Request.Context(), id, user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"permission": perm})
}

type presenceRequest struct {
	UserID  int64 `json:"user_id"`
	Present bool  `json:"present"`
}

func (s *Server) setPresence(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !s.requireOrganizer(c, id, user.ID) {
		return
	}
	var req presenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.tracker.SetPresence(c.Request.Context(), id, req.UserID, req.Present); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) toggleEventLike(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := s.engagement.ToggleEventLike(c.Request.Context(), id, user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": resp.Liked, "count": resp.Count})
}

type commentRequest struct {
	Text string `json:"text"`
}

func (s *Server) addEventComment(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.engagement.AddEventComment(c.Request.Context(), id, user.ID, req.Text); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (s *Server) listEventComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	comments, err := s.engagement.EventComments(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

type photoRequest struct {
	Ref string `json:"ref"`
}

func (s *Server) addPhoto(c *gin.Context) {
	if _, ok := mustViewer(c); !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ref, err := s.engagement.AddPhoto(c.Request.Context(), id, req.Ref)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ref": ref})
}

func (s *Server) removePhoto(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !s.requireOrganizer(c, id, user.ID) {
		return
	}
	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	removed, err := s.engagement.RemovePhoto(c.Request.Context(), id, req.Ref)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (s *Server) listPhotos(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	photos, err := s.engagement.Photos(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

func (s *Server) togglePhotoLike(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := s.engagement.TogglePhotoLike(c.Request.Context(), id, req.Ref, user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": resp.Liked, "count": resp.Count})
}

type photoCommentRequest struct {
	Ref  string `json:"ref"`
	Text string `json:"text"`
}

func (s *Server) addPhotoComment(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req photoCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.engagement.AddPhotoComment(c.Request.Context(), model.AddPhotoCommentArgs{
		EventID:  id,
		PhotoRef: req.Ref,
		Author:   user.DisplayName(),
		Text:     req.Text,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

type removePhotoCommentRequest struct {
	Ref    string `json:"ref"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

func (s *Server) removePhotoComment(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req removePhotoCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	removed, err := s.engagement.RemovePhotoComment(c.Request.Context(), model.RemovePhotoCommentArgs{
		EventID:    id,
		PhotoRef:   req.Ref,
		Author:     req.Author,
		Text:       req.Text,
		CallerID:   user.ID,
		CallerName: user.DisplayName(),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

type leaderboardRequest struct {
	Counts map[int64]int `json:"counts"`
}

func (s *Server) leaderboard(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req leaderboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := s.ranking.Leaderboard(c.Request.Context(), model.LeaderboardArgs{
		EventID: id,
		Counts:  req.Counts,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": resp.Entries})
}

type broadcastRequest struct {
	Message string `json:"message"`
	ByEmail bool   `json:"by_email"`
}

func (s *Server) broadcast(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !s.requireOrganizer(c, id, user.ID) {
		return
	}
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.notifications.BroadcastToParticipants(c.Request.Context(), model.BroadcastArgs{
		EventID: id,
		Message: req.Message,
		ByEmail: req.ByEmail,
		Sender:  user.DisplayName(),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
