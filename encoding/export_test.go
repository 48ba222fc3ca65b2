package encoding

func NewCounter() *counter {
	return newCounter()
}

var ValidateMessageSize = validateMessageSize
