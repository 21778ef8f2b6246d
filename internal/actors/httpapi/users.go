package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mtorres/eventia/internal/core/model"
)

type registerRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := s.directory.Register(c.Request.Context(), model.RegisterArgs{
		Name:     req.Name,
		Surname:  req.Surname,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": resp.User})
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := s.directory.Authenticate(c.Request.Context(), model.AuthenticateArgs{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": resp.User})
}

func (s *Server) getUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := s.directory.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) listBadges(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	badges, err := s.directory.Badges(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

type completeProfileRequest struct {
	Phone      string     `json:"phone"`
	NationalID string     `json:"national_id"`
	Gender     string     `json:"gender"`
	BirthDate  *time.Time `json:"birth_date"`
}

func (s *Server) completeProfile(c *gin.Context) {
	user, ok := s.ownAccount(c)
	if !ok {
		return
	}
	var req completeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	args := model.CompleteProfileArgs{
		UserID:     user.ID,
		Phone:      req.Phone,
		NationalID: req.NationalID,
		Gender:     req.Gender,
	}
	if req.BirthDate != nil {
		args.BirthDate = *req.BirthDate
	}
	updated, err := s.directory.CompleteProfile(c.Request.Context(), args)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": updated})
}

type renameRequest struct {
	Username string `json:"username"`
}

func (s *Server) rename(c *gin.Context) {
	user, ok := s.ownAccount(c)
	if !ok {
		return
	}
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := s.directory.Rename(c.Request.Context(), user.ID, req.Username)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": updated})
}

type setPhotoRequest struct {
	Ref string `json:"ref"`
}

func (s *Server) setProfilePhoto(c *gin.Context) {
	user, ok := s.ownAccount(c)
	if !ok {
		return
	}
	var req setPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.directory.SetProfilePhoto(c.Request.Context(), user.ID, req.Ref); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ownAccount resolves the viewer and checks the :id path parameter refers to
// their own account. Callers must return immediately when ok is false.
func (s *Server) ownAccount(c *gin.Context) (*model.User, bool) {
	user, ok := mustViewer(c)
	if !ok {
		return nil, false
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}
	if id != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot modify another user's account"})
		return nil, false
	}
	return user, true
}

type friendRequestRequest struct {
	ToID int64 `json:"to_id"`
}

func (s *Server) sendFriendRequest(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	var req friendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.directory.SendFriendRequest(c.Request.Context(), user.ID, req.ToID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) acceptFriendRequest(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	senderID, ok := pathID(c, "sender_id")
	if !ok {
		return
	}
	if err := s.directory.AcceptFriendRequest(c.Request.Context(), user.ID, senderID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) rejectFriendRequest(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	senderID, ok := pathID(c, "sender_id")
	if !ok {
		return
	}
	if err := s.directory.RejectFriendRequest(c.Request.Context(), user.ID, senderID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) listFriends(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	friends, err := s.directory.ListFriends(c.Request.Context(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

type appendMessageRequest struct {
	ToID int64  `json:"to_id"`
	Text string `json:"text"`
}

func (s *Server) appendMessage(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	var req appendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.directory.AppendMessage(c.Request.Context(), model.AppendMessageArgs{
		FromID: user.ID,
		ToID:   req.ToID,
		Text:   req.Text,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) transcript(c *gin.Context) {
	user, ok := mustViewer(c)
	if !ok {
		return
	}
	messages, err := s.directory.Transcript(c.Request.Context(), user.ID, c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
