package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/hackathon-api/docs"
	v1 "github.com/vietanh2810/hackathon-api/internal/api/handler/v1"
	"github.com/vietanh2810/hackathon-api/internal/api/middleware"
	"github.com/vietanh2810/hackathon-api/internal/config"
	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/metrics"
	"github.com/vietanh2810/hackathon-api/internal/repository"
	"github.com/vietanh2810/hackathon-api/internal/repository/dao"
	"github.com/vietanh2810/hackathon-api/internal/service"
)

type Server struct {
	Config   *config.AppConfig
	Router   *gin.Engine
	Registry *prometheus.Registry

	events  domain.EventPublisher
	metrics *metrics.Domain
	hub     v1.LiveHub
}

type handlers struct {
	auth        *v1.AuthHandler
	user        *v1.UserHandler
	idea        *v1.IdeaHandler
	team        *v1.TeamHandler
	leaderboard *v1.LeaderboardHandler
	suggestion  *v1.SuggestionHandler
	admin       *v1.AdminHandler
	live        *v1.LiveHandler
}

type repositories struct {
	users       *repository.UserRepository
	ideas       *repository.IdeaRepository
	teams       *repository.TeamRepository
	suggestions *repository.SuggestionRepository
	votes       *repository.VoteRepository
}

func NewServer(
	conf *config.AppConfig,
	db *gorm.DB,
	reg *prometheus.Registry,
	domainMetrics *metrics.Domain,
	hub v1.LiveHub,
	events domain.EventPublisher,
) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:   conf,
		Router:   engine,
		Registry: reg,
		events:   events,
		metrics:  domainMetrics,
		hub:      hub,
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(db))

	return s
}

func newRepositories(db *gorm.DB) repositories {
	return repositories{
		users:       repository.NewUserRepository(dao.NewUserDAO(db)),
		ideas:       repository.NewIdeaRepository(dao.NewIdeaDAO(db)),
		teams:       repository.NewTeamRepository(dao.NewTeamDAO(db)),
		suggestions: repository.NewSuggestionRepository(dao.NewSuggestionDAO(db)),
		votes:       repository.NewVoteRepository(dao.NewVoteDAO(db)),
	}
}

func (s *Server) initHandlers(db *gorm.DB) handlers {
	repos := newRepositories(db)
	rules := s.Config.Rules

	uSvc := service.NewUserService(repos.users, s.events)
	authSvc := service.NewAuthService(repos.users, s.metrics)
	ideaSvc := service.NewIdeaService(repos.ideas, repos.votes, rules, s.events, s.metrics)
	teamSvc := service.NewTeamService(repos.teams, repos.ideas, repos.votes, rules, s.events, s.metrics)
	leaderboardSvc := service.NewLeaderboardService(repos.teams, repos.ideas, rules)
	suggestionSvc := service.NewSuggestionService(repos.suggestions, repos.votes, s.events, s.metrics)
	adminSvc := service.NewAdminService(repos.users, repos.ideas, repos.teams, repos.suggestions, repos.votes, s.events)

	return handlers{
		auth:        v1.NewAuthHandler(s.Config.API, authSvc),
		user:        v1.NewUserHandler(uSvc),
		idea:        v1.NewIdeaHandler(ideaSvc, uSvc),
		team:        v1.NewTeamHandler(teamSvc, uSvc),
		leaderboard: v1.NewLeaderboardHandler(leaderboardSvc),
		suggestion:  v1.NewSuggestionHandler(suggestionSvc, uSvc),
		admin:       v1.NewAdminHandler(adminSvc, uSvc),
		live:        v1.NewLiveHandler(s.hub, uSvc, s.Config.API.AllowedCORSDomains),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	if s.Registry != nil {
		s.Router.Use(metrics.NewHTTPMetrics(s.Registry).Middleware())
	}
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", h.auth.HandleSignup)
		auth.POST("/auth/login", h.auth.HandleLogin)
	}

	api := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	voteLimit := middleware.NewUserRateLimiter(s.Config.API.VotesPerSecond, s.Config.API.VoteBurst).Limit()
	{
		api.GET("/users", h.user.HandleListUsers)
		api.GET("/users/me", h.user.HandleGetMe)
		api.PATCH("/users/me", h.user.HandleUpdateMe)
		api.GET("/users/:userID", h.user.HandleGetUser)

		api.POST("/ideas", h.idea.HandleCreateIdea)
		api.GET("/ideas", h.idea.HandleListIdeas)
		api.GET("/ideas/:ideaID", h.idea.HandleGetIdea)
		api.PATCH("/ideas/:ideaID", h.idea.HandleUpdateIdea)
		api.DELETE("/ideas/:ideaID", h.idea.HandleDeleteIdea)
		api.POST("/ideas/:ideaID/vote", voteLimit, h.idea.HandleToggleIdeaVote)

		api.POST("/teams", h.team.HandleCreateTeam)
		api.GET("/teams", h.team.HandleListTeams)
		api.GET("/teams/:teamID", h.team.HandleGetTeam)
		api.PATCH("/teams/:teamID", h.team.HandleUpdateTeam)
		api.DELETE("/teams/:teamID", h.team.HandleDeleteTeam)
		api.POST("/teams/:teamID/join", h.team.HandleJoinTeam)
		api.POST("/teams/:teamID/leave", h.team.HandleLeaveTeam)
		api.DELETE("/teams/:teamID/members/:userID", h.team.HandleKickMember)
		api.POST("/teams/:teamID/invite-code", h.team.HandleRegenerateInviteCode)
		api.POST("/teams/:teamID/vote", voteLimit, h.team.HandleToggleTeamVote)

		api.GET("/leaderboard", h.leaderboard.HandleGetLeaderboard)

		api.POST("/suggestions", h.suggestion.HandleCreateSuggestion)
		api.GET("/suggestions", h.suggestion.HandleListSuggestions)
		api.DELETE("/suggestions/:suggestionID", h.suggestion.HandleDeleteSuggestion)
		api.POST("/suggestions/:suggestionID/vote", voteLimit, h.suggestion.HandleToggleSuggestionVote)
		api.PUT("/suggestions/:suggestionID/status", h.suggestion.HandleSetSuggestionStatus)

		api.GET("/live", h.live.HandleLive)
	}

	admin := s.Router.Group(basePath+"/admin", middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		admin.GET("/users", h.admin.HandleListUsers)
		admin.PUT("/users/:userID/role", h.admin.HandleSetRole)
		admin.PUT("/users/:userID/ban", h.admin.HandleSetBanned)
		admin.PUT("/ideas/:ideaID/hidden", h.admin.HandleHideIdea)
		admin.DELETE("/teams/:teamID", h.admin.HandleDeleteTeam)
		admin.DELETE("/suggestions/:suggestionID", h.admin.HandleDeleteSuggestion)
		admin.GET("/stats", h.admin.HandleStats)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	if s.Registry != nil {
		s.Router.GET("/metrics", gin.WrapH(metrics.Handler(s.Registry)))
	}

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Hackathon API"
	docs.SwaggerInfo.Description = "Ideas, teams, votes and live leaderboard for a hackathon."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
