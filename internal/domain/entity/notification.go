package entity

// MessageAttribute é um atributo de mensagem do SNS.
type MessageAttribute struct {
	DataType    string
	StringValue string
}

// NotificationMessage representa uma publicação em um tópico SNS.
type NotificationMessage struct {
	TopicARN   string
	Subject    string
	Body       string
	Attributes map[string]MessageAttribute
}
