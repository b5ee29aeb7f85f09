package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"log"
	"sync"
)

type Config struct {
	Env  string `yaml:"env" env:"ENV" env-default:"local"`
	User struct {
		Name  string `yaml:"name" env:"FIRST_NAME" env-required:"true"`
		Phone string `yaml:"phone" env:"PHONE_NUMBER" env-required:"true"`
	} `yaml:"user"`
	Data struct {
		VendorsPath string `yaml:"vendors_path" env:"VENDORS_PATH" env-default:"data/vendors.json"`
		PromptPath  string `yaml:"prompt_path" env:"SYSTEM_PROMPT_PATH" env-default:"prompts/system.txt"`
	} `yaml:"data"`
	OpenAI struct {
		ApiKey   string `yaml:"api_key" env:"OPENAI_API_KEY" env-default:""`
		BaseURL  string `yaml:"base_url" env:"OPENAI_BASE_URL" env-default:""`
		Model    string `yaml:"model" env-default:"gpt-4o-mini"`
		MaxSteps int    `yaml:"max_steps" env-default:"5"`
	} `yaml:"openai"`
	Twilio struct {
		AccountSID  string `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID" env-default:""`
		AuthToken   string `yaml:"auth_token" env:"TWILIO_AUTH_TOKEN" env-default:""`
		PhoneNumber string `yaml:"phone_number" env:"TWILIO_PHONE_NUMBER" env-default:""`
	} `yaml:"twilio"`
	SmsWebhook struct {
		Url    string `yaml:"url" env-default:""`
		ApiKey string `yaml:"api_key" env-default:""`
	} `yaml:"sms_webhook"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"VendorChatBot"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:"admin"`
		Password string `yaml:"password" env-default:"pass"`
		Database string `yaml:"database" env-default:"vendorchat"`
	} `yaml:"mongo"`
	Redis struct {
		Enabled    bool   `yaml:"enabled" env-default:"false"`
		Addr       string `yaml:"addr" env-default:"127.0.0.1:6379"`
		Password   string `yaml:"password" env-default:""`
		DB         int    `yaml:"db" env-default:"0"`
		TTLMinutes int    `yaml:"ttl_minutes" env-default:"10"`
	} `yaml:"redis"`
	Calendar struct {
		Enabled         bool              `yaml:"enabled" env-default:"false"`
		CredentialsFile string            `yaml:"credentials_file" env-default:""`
		Calendars       map[string]string `yaml:"calendars"`
		WorkdayStart    string            `yaml:"workday_start" env-default:"08:00"`
		WorkdayEnd      string            `yaml:"workday_end" env-default:"18:00"`
	} `yaml:"calendar"`
	Listen struct {
		BindIP    string  `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port      string  `yaml:"port" env-default:"9100"`
		ApiKey    string  `yaml:"key" env-default:""`
		Timeout   int     `yaml:"timeout" env-default:"30"`
		RateLimit float64 `yaml:"rate_limit" env-default:"1"`
		Burst     int     `yaml:"burst" env-default:"5"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	once.Do(func() {
		conf, err := load(path)
		if err != nil {
			log.Fatal(err)
		}
		instance = conf
	})
	return instance
}

func load(path string) (*Config, error) {
	// a missing .env is fine, the values may come from the real environment
	_ = godotenv.Load()

	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("%s; %s", err, desc)
	}
	return conf, nil
}
