package handlers

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/application"
	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	"github.com/oksasatya/six-cities-api/internal/interface/middleware"
	"github.com/oksasatya/six-cities-api/pkg/response"
)

type CommentHandler struct {
	Comments *application.CommentService
	Users    *application.UserService
	Logger   logrus.FieldLogger
}

func NewCommentHandler(comments *application.CommentService, users *application.UserService, logger logrus.FieldLogger) *CommentHandler {
	return &CommentHandler{Comments: comments, Users: users, Logger: logger}
}

// Index handles GET /offers/:id/comments.
func (h *CommentHandler) Index(rc *middleware.RequestContext) error {
	offerID, err := paramID(rc, "id")
	if err != nil {
		return err
	}
	ctx := rc.Gin.Request.Context()
	comments, err := h.Comments.FindByOfferID(ctx, offerID, application.DefaultCommentCount)
	if err != nil {
		return err
	}

	authors := map[primitive.ObjectID]*entity.User{}
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		author, err := h.author(ctx, authors, comments[i].AuthorID)
		if err != nil {
			return err
		}
		out = append(out, NewCommentResponse(&comments[i], author))
	}
	response.OK(rc.Gin, out)
	return nil
}

// Create handles POST /offers/:id/comments.
func (h *CommentHandler) Create(rc *middleware.RequestContext) error {
	u, err := requireUser(rc)
	if err != nil {
		return err
	}
	offerID, err := paramID(rc, "id")
	if err != nil {
		return err
	}
	req, _ := middleware.BodyAs[CreateCommentRequest](rc)
	c, err := h.Comments.Create(rc.Gin.Request.Context(), application.CreateCommentInput{
		Text:     req.Text,
		Rating:   req.Rating,
		AuthorID: u.ID,
		OfferID:  offerID,
	})
	if err != nil {
		return err
	}
	response.Created(rc.Gin, NewCommentResponse(c, u))
	return nil
}

// author looks a comment author up once per request; deleted authors yield nil.
func (h *CommentHandler) author(ctx context.Context, cache map[primitive.ObjectID]*entity.User, id primitive.ObjectID) (*entity.User, error) {
	if u, ok := cache[id]; ok {
		return u, nil
	}
	u, err := h.Users.FindByID(ctx, id)
	if err != nil && !errors.Is(err, application.ErrUserNotFound) {
		return nil, err
	}
	cache[id] = u
	return u, nil
}
