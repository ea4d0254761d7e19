package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/hackathon-api/internal/api/middleware"
	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/service"
)

var (
	errMissingUserID = errors.New("missing user id in context")
	errInvalidID     = errors.New("id must be a positive integer")

	errInvalidRoleFilter   = errors.New("role must be one of participant, mentor, judge, admin")
	errInvalidStatusFilter = errors.New("unknown status filter")
	errInvalidSort         = errors.New("sort must be votes or recent")
	errInvalidLimit        = errors.New("limit must be a positive integer")
)

// ProfileGetter loads the caller's hackathon profile.
type ProfileGetter interface {
	GetProfile(ctx context.Context, userID uint) (domain.HackathonUser, error)
}

// getActorFromContext resolves the profile of the user authenticated by VerifyJWT.
func getActorFromContext(ctx *gin.Context, uSvc ProfileGetter) (domain.HackathonUser, *response.Err) {
	value, _ := ctx.Get(middleware.ContextKeyUserID)
	userID, _ := value.(uint)
	if userID == 0 {
		return domain.HackathonUser{}, response.ErrUnauthorized(errMissingUserID)
	}

	actor, err := uSvc.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.HackathonUser{}, response.ErrUnauthorized(err)
		}

		return domain.HackathonUser{}, response.ErrInternalServerError(fmt.Errorf("uSvc.GetProfile -> %w", err))
	}

	return actor, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("%s: %w", name, errInvalidID))
	}

	return uint(id), nil
}

// serviceErr maps service sentinels to HTTP errors. Anything unknown is a 500
// wrapped with op so the log shows where it came from.
func serviceErr(op string, key string, value any, err error) *response.Err {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return response.ErrNotFound("user", key, value)
	case errors.Is(err, service.ErrIdeaNotFound):
		return response.ErrNotFound("idea", key, value)
	case errors.Is(err, service.ErrTeamNotFound):
		return response.ErrNotFound("team", key, value)
	case errors.Is(err, service.ErrSuggestionNotFound):
		return response.ErrNotFound("suggestion", key, value)
	case errors.Is(err, service.ErrPermissionDenied),
		errors.Is(err, service.ErrBanned),
		errors.Is(err, service.ErrSelfVote),
		errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrCannotDemoteSelf),
		errors.Is(err, service.ErrIdeaHidden):
		return response.ErrPermissionDenied(err)
	case errors.Is(err, service.ErrUserEmailExists),
		errors.Is(err, service.ErrTeamNameExists),
		errors.Is(err, service.ErrAlreadyVoted),
		errors.Is(err, service.ErrAlreadyInTeam),
		errors.Is(err, service.ErrTeamFull),
		errors.Is(err, service.ErrTeamClosed):
		return response.ErrConflict(err)
	case errors.Is(err, service.ErrNotTeamMember),
		errors.Is(err, service.ErrCapacityBelowMembers),
		errors.Is(err, service.ErrInvalidTeamTransition),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrCannotKickSelf):
		return response.ErrBadRequest(err)
	}

	return response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err))
}

func derefID(id *uint) uint {
	if id == nil {
		return 0
	}

	return *id
}
