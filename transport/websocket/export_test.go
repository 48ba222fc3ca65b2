package websocket

import "github.com/aptpod/viewmeasure-go/transport"

func (d *Dialer) BuildURL(address string, params transport.NegotiationParams) (string, error) {
	return d.buildURL(address, params)
}

var IsErrTransportClosed = isErrTransportClosed
