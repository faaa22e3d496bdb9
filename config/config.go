package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Guild    GuildConfig    `mapstructure:"guild"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	Timezone     string `mapstructure:"timezone"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 缓存配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 认证配置（JWT + Discord OAuth）
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	Discord         DiscordConfig `mapstructure:"discord"`
}

// DiscordConfig Discord OAuth2 应用配置
type DiscordConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// GuildConfig 帮会业务配置
// 职业与小队名单是阵型格子的合法域，注入一次，所有校验共用
type GuildConfig struct {
	Jobs               []string `mapstructure:"jobs"`                 // 合法职业列表
	Teams              []string `mapstructure:"teams"`                // 小队名称列表
	ProxyRequiresAdmin bool     `mapstructure:"proxy_requires_admin"` // 代报名是否仅限管理员
	AttendancePolicy   string   `mapstructure:"attendance_policy"`    // formation | registered
	MasterAdminID      string   `mapstructure:"master_admin_id"`      // 主管理员 Discord ID
	AllowedMemberIDs   []string `mapstructure:"allowed_member_ids"`   // 成员白名单（空 = 不限制）
}

// IsValidJob 检查职业是否在配置名单中
func (g *GuildConfig) IsValidJob(job string) bool {
	for _, j := range g.Jobs {
		if j == job {
			return true
		}
	}
	return false
}

// IsValidTeam 检查小队名称是否在配置名单中
func (g *GuildConfig) IsValidTeam(team string) bool {
	for _, t := range g.Teams {
		if t == team {
			return true
		}
	}
	return false
}

// IsAllowedMember 检查 Discord ID 是否允许登录
func (g *GuildConfig) IsAllowedMember(discordID string) bool {
	if discordID != "" && discordID == g.MasterAdminID {
		return true
	}
	if len(g.AllowedMemberIDs) == 0 {
		return true
	}
	for _, id := range g.AllowedMemberIDs {
		if id == discordID {
			return true
		}
	}
	return false
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "battle_system")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Taipei")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl", "168h")

	v.SetDefault("guild.jobs", []string{"素問", "血河", "九靈", "龍吟", "碎夢", "神相", "鐵衣"})
	v.SetDefault("guild.teams", []string{"進攻隊", "防守隊", "機動隊"})
	v.SetDefault("guild.proxy_requires_admin", false)
	v.SetDefault("guild.attendance_policy", "formation")
	v.SetDefault("guild.allowed_member_ids", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("GUILD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if len(c.Guild.Jobs) == 0 {
		return fmt.Errorf("配置校验失败: guild.jobs 不能为空")
	}
	if len(c.Guild.Teams) == 0 {
		return fmt.Errorf("配置校验失败: guild.teams 不能为空")
	}
	if p := c.Guild.AttendancePolicy; p != "formation" && p != "registered" {
		return fmt.Errorf("配置校验失败: guild.attendance_policy 必须为 formation 或 registered")
	}
	return nil
}
