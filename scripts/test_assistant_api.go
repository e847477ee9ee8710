package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func turn(sessionID, message string) map[string]interface{} {
	color.Yellow("\n> %s", message)
	resp, body, err := sendRequest("POST", "/assistant/v1/turn", map[string]interface{}{
		"session_id": sessionID,
		"message":    message,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	prettyPrint(parsed)
	return parsed
}

func main() {
	color.Cyan("🚀 Starting Assistant Routing Smoke Test\n")

	// 1. Create session
	color.Yellow("\n1. Create Session")
	resp, body, err := sendRequest("POST", "/assistant/v1/session", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var created struct {
		Data struct {
			SessionID string `json:"session_id"`
		} `json:"data"`
	}
	json.Unmarshal(body, &created)
	sessionID := created.Data.SessionID
	color.Green("Session: %s", sessionID)

	// 2. Walk the routing tiers
	turn(sessionID, "open settings")
	turn(sessionID, "open links panel")
	turn(sessionID, "the d one")
	turn(sessionID, "what is workspace")
	turn(sessionID, "tell me more")
	turn(sessionID, "workspace?")
	turn(sessionID, "stop")
	turn(sessionID, "I love workspace music")

	color.Cyan("\n✅ Smoke test complete")
}
