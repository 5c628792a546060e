package constant

const (
	DefaultChannelName   = "low-stock-notifications"
	DefaultConsumerGroup = "consumer:low-stock-alert"
)

const (
	ChannelDriverJetStream = "jetstream"
	ChannelDriverKafka     = "kafka"
)
