/*
Package measure は、要素の計測サービスを提供するパッケージです。

呼び出し側は ViewHandle で要素を指定し、ローカル座標系（Measure）またはウィンドウ座標系（MeasureInWindow）での計測を要求します。
計測結果はコールバックで非同期に、高々一度だけ通知されます。
計測を行う Provider は Registry に登録し、 Resolve で Service として取得します。

Conn はリモートの Provider へ接続するクライアント、 Server は Provider をリモートへ公開するサーバーです。
*/
package measure
