// Package domain はhistoryフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrConnect はフィードへの接続に失敗したことを示します。
	ErrConnect = errors.New("connect failed")
	// ErrSend はリクエストの送信に失敗したことを示します。
	ErrSend = errors.New("send failed")
	// ErrReceive は受信中にエラーが発生したことを示します。途中までのデータが返されます。
	ErrReceive = errors.New("receive failed")
)
