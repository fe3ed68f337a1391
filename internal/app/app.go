package app

import (
	"fmt"
	"net/http"
	"passreset/internal/app/deps"
	"passreset/internal/app/services"
	"passreset/internal/http/handlers/health"

	loginwithemail "passreset/internal/http/handlers/auth/log_in_with_email"
	resetpassword "passreset/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "passreset/internal/http/handlers/auth/send_password_reset_token"
	signupwithemail "passreset/internal/http/handlers/auth/sign_up_with_email"
	verifypasswordresettoken "passreset/internal/http/handlers/auth/verify_password_reset_token"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signupwithemail.New(s.SignUpWithEmail))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(
		http.MethodPost,
		"/password_reset/token",
		sendpasswordresettoken.New(s.SendPasswordResetToken, isTestMode),
	)
	authRouter.Method(
		http.MethodGet,
		"/password_reset/{token}/verification",
		verifypasswordresettoken.New(s.VerifyPasswordResetToken),
	)
	authRouter.Method(http.MethodPut, "/password_reset", resetpassword.New(s.ResetPassword))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Method(http.MethodGet, "/", health.New())
	router.Mount("/auth", authRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
