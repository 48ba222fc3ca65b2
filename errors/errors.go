package errors

import (
	"errors"
	"fmt"

	"github.com/aptpod/viewmeasure-go/message"
)

var (
	// ErrViewMeasureは、viewmeasureライブラリで定義されている基底エラーです。
	ErrViewMeasure = errors.New("viewmeasure")
	// ErrConnectionClosedは、トランスポートが閉じられている状態でトランスポートへの読み書きをした場合のエラーです。
	ErrConnectionClosed = fmt.Errorf("closed viewmeasure connection: %w", ErrViewMeasure)
	// ErrMalformedMessageは、メッセージのエンコードやデコードに失敗した時のエラーです。
	ErrMalformedMessage = fmt.Errorf("malformed message: %w", ErrViewMeasure)
	// ErrMessageTooLargeは、メッセージが大きすぎる場合のエラーです。
	ErrMessageTooLarge = fmt.Errorf("message is too large: %w", ErrMalformedMessage)

	// ErrConnectionNormalCloseは、コネクションが正常にクローズされたことを表すエラーです。
	ErrConnectionNormalClose = fmt.Errorf("normal close: %w", ErrConnectionClosed)
	// ErrConnectionAbnormalCloseは、コネクションが異常にクローズされたことを表すエラーです。
	ErrConnectionAbnormalClose = fmt.Errorf("abnormal close: %w", ErrConnectionClosed)
	// ErrConnectionGoingAwayCloseは、相手側が離脱したためにコネクションがクローズされたことを表すエラーです。
	ErrConnectionGoingAwayClose = fmt.Errorf("going away close: %w", ErrConnectionClosed)
	// ErrConnectionInternalErrorCloseは、内部エラーによりコネクションがクローズされたことを表すエラーです。
	ErrConnectionInternalErrorClose = fmt.Errorf("internal error close: %w", ErrConnectionClosed)
)

// 通信中に、失敗を意味する結果コードが含まれたメッセージを受信した場合に送出される例外です。
type FailedMessageError struct {
	ResultCode      message.ResultCode // 結果コード
	ResultString    string             // 結果文字列
	ReceivedMessage message.Message    // 受信メッセージ
}

func (e FailedMessageError) Error() string {
	return fmt.Sprintf("result_code: %v result_message: %v", e.ResultCode, e.ResultString)
}

func (e FailedMessageError) Is(err error) bool {
	return err == ErrViewMeasure
}

func AsFailedMessageError(err error) (*FailedMessageError, bool) {
	var res FailedMessageError
	ok := As(err, &res)
	return &res, ok
}

func New(text string) error {
	return errors.New(text)
}

func Errorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
