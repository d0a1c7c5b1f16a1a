package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// LINE 平台 id_token 校验接口
const lineVerifyURL = "https://api.line.me/oauth2/v2.1/verify"

// LineProfile LINE 登录用户信息
type LineProfile struct {
	UserID      string // LINE userId（verify 接口的 sub）
	DisplayName string
	PictureURL  string
}

type lineVerifyResponse struct {
	Sub              string `json:"sub"`
	Name             string `json:"name"`
	Picture          string `json:"picture"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// VerifyLineIDToken 校验 LIFF 前端下发的 id_token 并取回用户资料
func VerifyLineIDToken(channelID, idToken string) (*LineProfile, error) {
	if channelID == "" {
		return nil, fmt.Errorf("LINE_CHANNEL_ID is not set")
	}

	form := url.Values{
		"id_token":  {idToken},
		"client_id": {channelID},
	}

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	resp, err := client.PostForm(lineVerifyURL, form)
	if err != nil {
		return nil, fmt.Errorf("post request to line failed: %v", err)
	}
	defer resp.Body.Close()

	var result lineVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response failed: %v", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("line verify error: %s (%s)", result.Error, result.ErrorDescription)
	}
	if resp.StatusCode != http.StatusOK || result.Sub == "" {
		return nil, fmt.Errorf("line verify failed, status %d", resp.StatusCode)
	}

	return &LineProfile{
		UserID:      result.Sub,
		DisplayName: result.Name,
		PictureURL:  result.Picture,
	}, nil
}
