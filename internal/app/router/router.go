package router

import (
	authhandler "auth_backend/internal/feature/auth/transport/handler"
	platformhandler "auth_backend/internal/platform/http/handler"
	jwtmw "auth_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

func NewRouter(authHandler *authhandler.AuthHandler, issuer jwtmw.Issuer) *gin.Engine {
	r := gin.Default()

	// ヘルスチェック
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	r.OPTIONS("/healthz", platformhandler.Health)

	// 認証不要
	// 新規ユーザー登録
	r.POST("/register", authHandler.Register)
	// ログイン（セッショントークン発行）
	r.POST("/login", authHandler.Login)
	// ログアウト（クッキー消去）
	r.GET("/logout", authHandler.Logout)
	// ログイン状態チェック（常にboolを返す）
	r.GET("/loggedin", authHandler.LoginStatus)
	// パスワードリセットフロー
	r.POST("/forgotpassword", authHandler.ForgotPassword)
	r.PUT("/resetpassword/:resetToken", authHandler.ResetPassword)

	// 認証必須のルート
	auth := r.Group("/")
	// セッションクッキー（またはBearerトークン）の検証を適用
	auth.Use(jwtmw.AuthRequired(issuer))
	{
		auth.GET("/getuser", authHandler.GetUser)
		auth.PATCH("/updateuser", authHandler.UpdateUser)
		auth.PATCH("/changepassword", authHandler.ChangePassword)
	}

	return r
}
