package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database      DatabaseConfigs
	ApiServer     ServerConfigs
	WsProxyServer ServerConfigs
	Auth          AuthConfigs
	Session       SessionConfigs
	Storage       S3Configs
	File          FileConfigs
	Redis         RedisConfigs
	Kafka         KafkaConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string

	DefaultLimit int
	MaxLimit     int

	AllowCORS []string
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret  string
	AccessToken  TokenConfigs
	RefreshToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	SSLDisabled    bool
}

type FileConfigs struct {
	// MaxMemory bounds the multipart form buffer, MaxSize the accepted
	// upload size. AvatarCropWidth is the bounding width avatars are
	// resized to before upload.
	MaxMemory       int64
	MaxSize         int64
	AvatarCropWidth uint
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string
}
