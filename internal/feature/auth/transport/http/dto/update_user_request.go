package dto

// UpdateUserReq は/updateuserエンドポイントのリクエストボディを表します。
// nilのフィールドは「変更しない」を意味する部分更新セマンティクスです。
// メールアドレスは意図的に受け付けません（常に保存済みの値を保持します）。
type UpdateUserReq struct {
	Name  *string `json:"name"`
	Photo *string `json:"photo"`
	Phone *string `json:"phone"`
	Bio   *string `json:"bio"`
}
