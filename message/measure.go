package message

import "strconv"

// ViewHandleは、描画ツリー内の1つの要素を識別する不透明なハンドルです。
//
// ハンドルの採番と有効期間は描画側が管理します。要素がアンマウントされるとハンドルは無効になります。
type ViewHandle int64

func (h ViewHandle) String() string {
	return "view#" + strconv.FormatInt(int64(h), 10)
}

type (
	// MeasureRequestは、ローカル座標系での計測要求です。
	MeasureRequest struct {
		RequestID            // リクエストID
		Handle    ViewHandle // 計測対象のハンドル
	}

	// MeasureResponseは、MeasureRequestに対する応答です。
	MeasureResponse struct {
		RequestID         // リクエストID
		X         float64 // 親要素からの相対X座標
		Y         float64 // 親要素からの相対Y座標
		Width     float64 // 幅
		Height    float64 // 高さ
		PageX     float64 // ルートコンテンツからの相対X座標
		PageY     float64 // ルートコンテンツからの相対Y座標
	}

	// MeasureInWindowRequestは、ウィンドウ座標系での計測要求です。
	MeasureInWindowRequest struct {
		RequestID            // リクエストID
		Handle    ViewHandle // 計測対象のハンドル
	}

	// MeasureInWindowResponseは、MeasureInWindowRequestに対する応答です。
	MeasureInWindowResponse struct {
		RequestID         // リクエストID
		X         float64 // ウィンドウからの相対X座標
		Y         float64 // ウィンドウからの相対Y座標
		Width     float64 // 幅
		Height    float64 // 高さ
	}

	// MeasureAbandonedは、計測要求に対する応答が今後返却されないことを通知します。
	//
	// 呼び出し側は保留中の要求を解放するためだけに使用し、結果のコールバックは呼び出しません。
	MeasureAbandoned struct {
		RequestID               // リクエストID
		Reason    AbandonReason // 破棄理由
	}
)

// AbandonReasonは、計測要求が破棄された理由です。
type AbandonReason int32

const (
	_ AbandonReason = iota

	AbandonReasonViewUnmounted    // 計測完了前に要素がアンマウントされたことを表します。
	AbandonReasonViewNotFound     // ハンドルに対応する要素が存在しないことを表します。
	AbandonReasonProviderShutdown // 計測完了前にプロバイダーが停止したことを表します。
	AbandonReasonInvalidGeometry  // プロバイダーが不正な計測結果を返したことを表します。
)

func (r AbandonReason) String() string {
	switch r {
	case AbandonReasonViewUnmounted:
		return "view_unmounted"
	case AbandonReasonViewNotFound:
		return "view_not_found"
	case AbandonReasonProviderShutdown:
		return "provider_shutdown"
	case AbandonReasonInvalidGeometry:
		return "invalid_geometry"
	default:
		return "unknown(" + strconv.Itoa(int(r)) + ")"
	}
}

func (_ *MeasureRequest) isMessage() {}

func (_ *MeasureResponse) isMessage() {}

func (_ *MeasureInWindowRequest) isMessage() {}

func (_ *MeasureInWindowResponse) isMessage() {}

func (_ *MeasureAbandoned) isMessage() {}
