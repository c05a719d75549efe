package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/serenity-circle/serenity/internal/assessment"
	"github.com/serenity-circle/serenity/internal/wellness"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) announcements(c *gin.Context) {
	list, err := s.svc.Announcements(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": list})
}

type optionView struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type questionView struct {
	ID      int          `json:"id"`
	Prompt  string       `json:"prompt"`
	Options []optionView `json:"options"`
}

// questions lists the questionnaire without its scoring weights.
func (s *Server) questions(c *gin.Context) {
	qs := assessment.Questions()
	out := make([]questionView, 0, len(qs))
	for _, q := range qs {
		v := questionView{ID: q.ID, Prompt: q.Prompt}
		for i, o := range q.Options {
			v.Options = append(v.Options, optionView{Index: i, Text: o.Text})
		}
		out = append(out, v)
	}
	c.JSON(http.StatusOK, gin.H{"questions": out})
}

func (s *Server) category(c *gin.Context) {
	label := c.Param("label")
	c.JSON(http.StatusOK, gin.H{
		"profile":    assessment.ProfileFor(label),
		"insight":    assessment.InsightFor(label),
		"group_name": assessment.GroupNameFor(label),
	})
}

type credentials struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := s.svc.Register(c.Request.Context(), req.Nickname, req.Email, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.registrations.Inc()
	token := s.sessions.Create(u.ID, u.Nickname)
	s.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"user": u, "token": token})
}

func (s *Server) login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := s.svc.Login(c.Request.Context(), req.Nickname, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	token := s.sessions.Create(u.ID, u.Nickname)
	s.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}

func (s *Server) logout(c *gin.Context) {
	if t := s.token(c); t != "" {
		s.sessions.Destroy(t)
	}
	s.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

func (s *Server) submitAssessment(c *gin.Context) {
	var req struct {
		Answers map[int]int `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := s.svc.SubmitAssessment(c.Request.Context(), currentSession(c).UserID, req.Answers)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.assessments.WithLabelValues(out.Category.String()).Inc()
	c.JSON(http.StatusOK, out)
}

func (s *Server) results(c *gin.Context) {
	out, err := s.svc.Results(c.Request.Context(), currentSession(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) dashboard(c *gin.Context) {
	d, err := s.svc.Dashboard(c.Request.Context(), currentSession(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) trackMood(c *gin.Context) {
	var req struct {
		Level int    `json:"mood_level"`
		Type  string `json:"mood_type"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	e, err := s.svc.TrackMood(c.Request.Context(), currentSession(c).UserID, req.Level, req.Type, req.Notes)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (s *Server) trackHabit(c *gin.Context) {
	var req struct {
		Name      string `json:"habit_name"`
		Completed bool   `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	e, err := s.svc.TrackHabit(c.Request.Context(), currentSession(c).UserID, req.Name, req.Completed)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) trackEmotion(c *gin.Context) {
	var req struct {
		Name      string `json:"emotion_name"`
		Intensity int    `json:"intensity"`
		Trigger   string `json:"trigger"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	e, err := s.svc.TrackEmotion(c.Request.Context(), currentSession(c).UserID, req.Name, req.Intensity, req.Trigger)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (s *Server) poems(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	list, err := s.svc.Poems(c.Request.Context(), currentSession(c).UserID, limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"poems": list})
}

func (s *Server) savePoem(c *gin.Context) {
	var in wellness.PoemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p, err := s.svc.SavePoem(c.Request.Context(), currentSession(c).UserID, in)
	if err != nil {
		s.fail(c, err)
		return
	}
	status := http.StatusOK
	if in.ID == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, p)
}

func (s *Server) poem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		s.fail(c, wellness.ErrNotFound)
		return
	}
	p, err := s.svc.Poem(c.Request.Context(), currentSession(c).UserID, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) chatHistory(c *gin.Context) {
	room, err := s.svc.ChatHistory(c.Request.Context(), currentSession(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (s *Server) sendMessage(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := s.svc.SendMessage(c.Request.Context(), currentSession(c).UserID, req.Content)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.chatMessages.Inc()
	c.JSON(http.StatusCreated, m)
}

// chatSocket upgrades to a websocket subscribed to the member's group.
// Text frames the member sends are posted like SendMessage.
func (s *Server) chatSocket(c *gin.Context) {
	ctx := c.Request.Context()
	sess := currentSession(c)
	groupID, err := s.svc.GroupOf(ctx, sess.UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	s.hub.Serve(conn, groupID, func(text string) {
		if _, err := s.svc.SendMessage(ctx, sess.UserID, text); err != nil {
			s.log.Debug("websocket message rejected", zap.Int("user_id", sess.UserID), zap.Error(err))
			return
		}
		s.metrics.chatMessages.Inc()
	})
}

func (s *Server) toggleDarkMode(c *gin.Context) {
	on, err := s.svc.ToggleDarkMode(c.Request.Context(), currentSession(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dark_mode": on})
}

func (s *Server) affirmation(c *gin.Context) {
	ctx := c.Request.Context()
	u, err := s.svc.User(ctx, currentSession(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.affirm.Next(ctx, assessment.CategoryOrDefault(u.Category)))
}
