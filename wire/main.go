/*
Package wire は、計測プロトコルのワイヤレベルの送受信シーケンスを定義するパッケージです。

呼び出し側は ClientConn を、プロバイダー側は ServerConn を使用します。
*/
package wire

import "github.com/aptpod/viewmeasure-go/errors"

/*
ClientConn および ServerConn は以下のエラーを返します。
*/
var (
	// ErrUnauthorized は、認証されていないときに返されます。
	ErrUnauthorized = errors.Errorf("unauthorized : %w", ErrInvalidConnectRequest)

	// ErrInvalidConnectRequest は、ConnectRequestが不正の場合に返されます。
	ErrInvalidConnectRequest = errors.Errorf("invalid connect request: %w", errors.ErrViewMeasure)

	// ErrCapabilityNotFound は、要求された機能をプロバイダーが提供していない場合に返されます。
	ErrCapabilityNotFound = errors.Errorf("capability not found : %w", ErrInvalidConnectRequest)

	// ErrUnsupportedProtocolVersion は、相手側のプロトコルバージョンがサポートされていない場合に返されます。
	ErrUnsupportedProtocolVersion = errors.Errorf("unsupported protocol version: %w", errors.ErrViewMeasure)

	// ErrConnTimeout は、トランスポートからの読み込みを所定の時間待機しても応答が無い場合に返されます。
	ErrConnTimeout = errors.Errorf("connection timeout: %w", errors.ErrConnectionClosed)
)
