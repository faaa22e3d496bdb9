package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cheivoy/battle-system/config"
)

const (
	authorizeEndpoint = "https://discord.com/oauth2/authorize"
	tokenEndpoint     = "https://discord.com/api/oauth2/token"
	userEndpoint      = "https://discord.com/api/users/@me"
)

var ErrExchangeFailed = errors.New("discord 授权码兑换失败")

// Identity Discord 用户身份（边界只消费这两个事实）
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Client Discord OAuth2 客户端
type Client struct {
	cfg  *config.DiscordConfig
	http *http.Client
}

// NewClient 创建 Discord OAuth2 客户端
func NewClient(cfg *config.DiscordConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthorizeURL 生成授权跳转地址
// state 由调用方生成并在回调时校验
func (c *Client) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "identify")
	q.Set("state", state)
	return authorizeEndpoint + "?" + q.Encode()
}

// Exchange 用授权码换取 Access Token 并拉取用户身份
func (c *Client) Exchange(ctx context.Context, code string) (*Identity, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 token 接口失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrExchangeFailed
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("解析 token 响应失败: %w", err)
	}

	return c.fetchIdentity(ctx, tokenResp.AccessToken)
}

func (c *Client) fetchIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userEndpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求用户接口失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("拉取用户身份失败: HTTP %d", resp.StatusCode)
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("解析用户身份失败: %w", err)
	}
	if identity.ID == "" {
		return nil, errors.New("discord 返回的用户身份为空")
	}

	return &identity, nil
}
