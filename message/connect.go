package message

import (
	"time"

	uuid "github.com/google/uuid"
)

type (
	// ConnectRequestは、接続要求です。
	ConnectRequest struct {
		RequestID                     // リクエストID
		ProtocolVersion string        // プロトコルバージョン
		SessionID       uuid.UUID     // 呼び出し側のセッションID
		Capability      string        // 利用したい機能の名称
		PingInterval    time.Duration // Ping間隔
		PingTimeout     time.Duration // Pingタイムアウト
		AccessToken     string        // アクセストークン
	}

	// ConnectResponseは、接続要求に対する応答です。
	ConnectResponse struct {
		RequestID                  // リクエストID
		ProtocolVersion string     // プロトコルバージョン
		ResultCode      ResultCode // 結果コード
		ResultString    string     // 結果文字列
	}

	// Disconnectは、切断です。
	Disconnect struct {
		ResultCode   ResultCode // 結果コード
		ResultString string     // 結果文字列
	}
)

func (_ *ConnectRequest) isMessage() {}

func (_ *ConnectResponse) isMessage() {}

func (_ *Disconnect) isMessage() {}
