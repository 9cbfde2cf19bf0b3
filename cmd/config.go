package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	ClientSecret        string
	RestaurateurSecret  string
	DeliverySecret      string
	AdministratorSecret string

	ClientServiceURL      string
	RestaurantServiceURL  string
	DeliveryServiceURL    string
	OptionValueServiceURL string

	KafkaBrokers              string
	KafkaConsumerGroup        string
	KafkaDeliveryCreatedTopic string
	KafkaClientOrdersTopic    string
	KafkaDetailsRequestTopic  string
	KafkaDetailsResponseTopic string

	StaleOrderThresholdMinutes string
}
