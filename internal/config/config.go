package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ErrMissingKey indica que uma variável obrigatória não foi definida
var ErrMissingKey = errors.New("variável de ambiente obrigatória ausente")

var requiredKeys = []string{"DATABASE_URI", "DATABASE_NAME", "AUTH_SECRET", "PORT"}

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Auth     Auth     `mapstructure:",squash"`
	Cors     Cors     `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Address devolve host:port para o http.Server
func (s Server) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type Database struct {
	DSN             string        `mapstructure:"-"`
	URI             string        `mapstructure:"database_uri"`
	Name            string        `mapstructure:"database_name"`
	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

// Validate confere apenas o necessário para abrir a conexão
func (d Database) Validate() error {
	if d.URI == "" {
		return errors.Wrap(ErrMissingKey, "DATABASE_URI")
	}
	if d.Name == "" {
		return errors.Wrap(ErrMissingKey, "DATABASE_NAME")
	}
	return nil
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("AUTH_TOKEN_TTL", "1h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")

	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	return Load(viper.New())
}

// Load lê a configuração das variáveis de ambiente já carregadas no processo
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	// Chaves obrigatórias não têm default, então precisam ser vinculadas
	// explicitamente para aparecerem no Unmarshal
	for _, key := range requiredKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	config := &Config{}
	err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, errors.Wrap(err, "falha ao decodificar configuração")
	}

	config.Cors.AllowedOrigins = compact(config.Cors.AllowedOrigins)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	dsn, err := buildDSN(config.Database)
	if err != nil {
		return nil, err
	}
	config.Database.DSN = dsn

	return config, nil
}

// Validate falha na primeira variável obrigatória ausente
func (c *Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if c.Auth.Secret == "" {
		return errors.Wrap(ErrMissingKey, "AUTH_SECRET")
	}
	if c.Server.Port == "" {
		return errors.Wrap(ErrMissingKey, "PORT")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("AUTH_TOKEN_TTL deve ser positivo")
	}
	return nil
}

// LoadDatabase é usado pelas ferramentas de linha de comando, que só
// precisam do banco
func LoadDatabase() (Database, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	for _, key := range []string{"DATABASE_URI", "DATABASE_NAME"} {
		if err := v.BindEnv(key); err != nil {
			return Database{}, err
		}
	}

	db := Database{}
	err := v.Unmarshal(&db, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc()))
	if err != nil {
		return Database{}, errors.Wrap(err, "falha ao decodificar configuração")
	}

	if err := db.Validate(); err != nil {
		return Database{}, err
	}

	db.DSN, err = buildDSN(db)
	return db, err
}

// buildDSN troca o banco da URI pelo DATABASE_NAME
func buildDSN(db Database) (string, error) {
	u, err := url.Parse(db.URI)
	if err != nil {
		return "", errors.Wrap(err, "DATABASE_URI inválida")
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.Errorf("DATABASE_URI inválida: %q", db.URI)
	}

	u.Path = "/" + db.Name
	return u.String(), nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis do processo")
}
