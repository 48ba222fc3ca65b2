/*
Package viewmeasure は、描画ツリー上の要素を計測するプロトコルの実装をまとめたモジュールです。

呼び出し側は不透明なハンドルで要素を指定し、ローカル座標系またはウィンドウ座標系での位置と大きさを要求します。
計測結果はコールバックで非同期に、高々一度だけ通知されます。要素が計測前に破棄された場合、コールバックは呼び出されません。

# Packages

  - measure: 計測サービス、Registry、リモートProviderへのクライアントとサーバー
  - viewtree: メモリ上の描画ツリーを使用するProvider
  - message / encoding / wire: 計測プロトコルのメッセージ、エンコーディング、コネクション
  - transport: WebSocketなどのトランスポート

# Measure a view

ここではリモートのProviderへ接続し、ハンドル42の要素を計測します。

	package main

	import (
		"context"
		"log"
		"time"

		"github.com/aptpod/viewmeasure-go/measure"
		"github.com/aptpod/viewmeasure-go/transport/websocket"
	)

	func main() {
		conn, err := measure.Connect("localhost:8080", measure.TransportWebSocket,
			measure.WithConnWebSocket(websocket.DialerConfig{
				Path: "/measure",
			}),
		)
		if err != nil {
			log.Fatalf("failed to open connection: %v", err)
		}
		defer conn.Close(context.Background())

		registry := measure.NewRegistry()
		if err := registry.Register(measure.ServiceName, conn); err != nil {
			log.Fatal(err)
		}
		svc, ok := measure.ResolveDefault(registry)
		if !ok {
			log.Fatal("measurement is not available")
		}

		svc.Measure(42, func(g measure.LocalGeometry) {
			log.Printf("x[%v] y[%v] width[%v] height[%v] page_x[%v] page_y[%v]", g.X, g.Y, g.Width, g.Height, g.PageX, g.PageY)
		})

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if g, ok := svc.MeasureInWindowFuture(42).Wait(ctx); ok {
			log.Printf("x[%v] y[%v] width[%v] height[%v]", g.X, g.Y, g.Width, g.Height)
		}
	}

# Serve a view tree

	tree, err := viewtree.LoadScene(f)
	if err != nil {
		log.Fatal(err)
	}
	defer tree.Close()

	registry := measure.NewRegistry()
	registry.Register(measure.ServiceName, tree)
	http.Handle("/measure", measure.NewServer(registry).Handler())
*/
package viewmeasure
