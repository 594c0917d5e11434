// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/transport/http/dto"
	"auth_backend/internal/feature/auth/usecase"
	jwtmw "auth_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、ユーザーとセッショントークンを返します。
	Register(ctx context.Context, name, email, password string) (*entity.User, string, error)
	// Login はユーザーを認証し、成功時にユーザーとセッショントークンを返します。
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	// GetUser は認証済みユーザーのプロフィールを取得します。
	GetUser(ctx context.Context, userID uint) (*entity.User, error)
	// LoginStatus はセッショントークンが現在有効かどうかを返します。
	LoginStatus(token string) bool
	// UpdateUser はプロフィールを部分更新します。
	UpdateUser(ctx context.Context, userID uint, update usecase.ProfileUpdate) (*entity.User, error)
	// ChangePassword は現在のパスワードを検証した上で新しいパスワードを保存します。
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
	// ForgotPassword はリセットメールを送信します。
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword はリセットシークレットを検証して新しいパスワードを保存します。
	ResetPassword(ctx context.Context, secret, newPassword string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth          AuthUsecase
	tokenLifetime time.Duration
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase, tokenLifetime time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, tokenLifetime: tokenLifetime}
}

// statusForError はエラー種別をHTTPステータスへ変換する境界アダプターです。
func statusForError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrMissingFields),
		errors.Is(err, usecase.ErrPasswordTooShort),
		errors.Is(err, usecase.ErrMissingPassword):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrOldPasswordIncorrect):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrResetTokenInvalid):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrEmailAlreadyRegistered):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail はエラーをステータスとメッセージに変換して書き出します。
// 想定外のエラーは詳細を隠して500を返します。
func fail(c *gin.Context, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		if errors.Is(err, usecase.ErrEmailNotSent) {
			msg = usecase.ErrEmailNotSent.Error()
		} else {
			msg = "internal server error"
		}
	}
	c.JSON(status, dto.ErrorResponse{Error: msg})
}

// setSessionCookie はセッションクッキーを設定します。
// 属性: path=/, httpOnly, expires=now+lifetime, sameSite=none, secure。
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     jwtmw.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(h.tokenLifetime),
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
	})
}

// clearSessionCookie は過去の有効期限でクッキーを上書きして消去します。
func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     jwtmw.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
	})
}

// currentUserID はミドルウェアが解決した認証済みユーザーIDを取得します。
func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(jwtmw.ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー・パスワード不足は400、メール重複は409を返却
// - 成功時はセッションクッキーを設定し、201で公開フィールド+トークンを返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: usecase.ErrMissingFields.Error()})
		return
	}
	user, token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		slog.Warn("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		fail(c, err)
		return
	}
	slog.Info("user registered", "user_id", user.ID, "email", user.Email, "remote_addr", c.ClientIP())

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, dto.AuthResponse{UserResponse: dto.NewUserResponse(user), Token: token})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 未登録メールは404、パスワード不一致は401を返却
// - 成功時はセッションクッキーを設定し、200で公開フィールド+トークンを返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: usecase.ErrMissingFields.Error()})
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		fail(c, err)
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{UserResponse: dto.NewUserResponse(user), Token: token})
}

// Logout はセッションクッキーを消去します。常に成功します。
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "successfully logged out"})
}

// GetUser は認証済みユーザーのプロフィールを返却します。
func (h *AuthHandler) GetUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "not authorized, please login"})
		return
	}
	user, err := h.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// LoginStatus はセッションクッキーの有効性をboolで返却します。
// クッキー欠如・不正・期限切れはすべてfalseになり、エラーは返しません。
func (h *AuthHandler) LoginStatus(c *gin.Context) {
	token, err := c.Cookie(jwtmw.CookieName)
	if err != nil {
		c.JSON(http.StatusOK, false)
		return
	}
	c.JSON(http.StatusOK, h.auth.LoginStatus(token))
}

// UpdateUser はプロフィールを部分更新して返却します。
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "not authorized, please login"})
		return
	}
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update user validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	user, err := h.auth.UpdateUser(c.Request.Context(), userID, usecase.ProfileUpdate{
		Name:  req.Name,
		Photo: req.Photo,
		Phone: req.Phone,
		Bio:   req.Bio,
	})
	if err != nil {
		slog.Warn("update user failed", "error", err, "user_id", userID)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// ChangePassword は現在のパスワードを検証して新しいパスワードを保存します。
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "not authorized, please login"})
		return
	}
	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("change password validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: usecase.ErrMissingFields.Error()})
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.Password); err != nil {
		slog.Warn("change password failed", "error", err, "user_id", userID)
		fail(c, err)
		return
	}
	slog.Info("password changed", "user_id", userID)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password changed successfully"})
}

// ForgotPassword はリセットメールの送信を依頼します。
// - 未登録メールは404を返却
// - メール送信失敗は500を返却
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("forgot password validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: usecase.ErrMissingFields.Error()})
		return
	}
	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		slog.Warn("forgot password failed", "error", err, "email", req.Email)
		fail(c, err)
		return
	}
	slog.Info("reset email sent", "email", req.Email)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "reset email sent"})
}

// ResetPassword はURLパスのリセットシークレットを検証してパスワードを再設定します。
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: usecase.ErrMissingPassword.Error()})
		return
	}
	secret := c.Param("resetToken")
	if err := h.auth.ResetPassword(c.Request.Context(), secret, req.Password); err != nil {
		slog.Warn("reset password failed", "error", err, "remote_addr", c.ClientIP())
		fail(c, err)
		return
	}
	slog.Info("password reset successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password reset successful, please login"})
}
