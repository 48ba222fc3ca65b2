package message

type (
	// Pingは、呼び出し側とプロバイダーの間で疎通確認のために交換されるメッセージです。
	Ping struct {
		RequestID // リクエストID
	}

	// Pongは、Pingに対する応答です。
	Pong struct {
		RequestID // リクエストID
	}
)

func (_ *Ping) isMessage() {}

func (_ *Pong) isMessage() {}
