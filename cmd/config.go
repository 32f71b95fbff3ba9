package cmd

// Config carries all process configuration.
//
// HMACSecret signs scan link tokens; it is supplied via environment only
// and must never be logged or echoed in responses.
type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	HMACSecret          string
	PublicBaseURL       string
	ArrivalTokenTTLDays int
	ScanLinkTTLHours    int
}
