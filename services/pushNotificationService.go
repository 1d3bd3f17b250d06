package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PrayerWall/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

const expoPushURL = "https://exp.host/--/api/v2/push/send"

type pushTokenSource interface {
	GetPushTokens(ctx context.Context, userID int) ([]models.PushToken, error)
}

type fcmSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type PushNotificationService struct {
	tokens     pushTokenSource
	fcmClient  fcmSender
	httpClient *http.Client
	expoURL    string
}

type NotificationPayload struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	Sound    string            `json:"sound,omitempty"`
	Priority string            `json:"priority,omitempty"`
}

var pushService *PushNotificationService

func NewPushNotificationService(tokens pushTokenSource, fcmClient fcmSender) *PushNotificationService {
	return &PushNotificationService{
		tokens:     tokens,
		fcmClient:  fcmClient,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		expoURL:    expoPushURL,
	}
}

func InitPushNotificationService(tokens pushTokenSource) {
	pushService = NewPushNotificationService(tokens, nil)

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")

	var app *firebase.App
	var err error

	if serviceAccountPath != "" {
		opt := option.WithCredentialsFile(serviceAccountPath)
		app, err = firebase.NewApp(context.Background(), nil, opt)
		if err != nil {
			log.Printf("Failed to initialize Firebase app with service account: %v", err)
			return
		}
		log.Println("Firebase initialized with service account file")
	} else {
		// Application Default Credentials
		app, err = firebase.NewApp(context.Background(), nil)
		if err != nil {
			log.Printf("Failed to initialize Firebase app with ADC: %v", err)
			return
		}
		log.Println("Firebase initialized with Application Default Credentials")
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Printf("Failed to get Firebase messaging client: %v", err)
		return
	}
	pushService.fcmClient = client

	log.Println("Push notification service initialized successfully with FCM")
}

func GetPushNotificationService() *PushNotificationService {
	return pushService
}

func (s *PushNotificationService) SendNotificationToUser(ctx context.Context, userID int, payload NotificationPayload) error {
	tokens, err := s.tokens.GetPushTokens(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get push tokens for user %d: %w", userID, err)
	}

	if len(tokens) == 0 {
		return nil
	}

	failed := 0
	for _, token := range tokens {
		if err := s.sendToToken(ctx, token, payload); err != nil {
			failed++
			log.Printf("Failed to send notification to token %s: %v", token.Push_Token, err)
		}
	}

	if failed == len(tokens) {
		return fmt.Errorf("failed to deliver push notification to any of %d devices for user %d", failed, userID)
	}
	return nil
}

func (s *PushNotificationService) sendToToken(ctx context.Context, pushToken models.PushToken, payload NotificationPayload) error {
	// Expo Go development builds
	if strings.HasPrefix(pushToken.Push_Token, "ExponentPushToken[") {
		return s.sendExpoNotification(ctx, pushToken, payload)
	}

	if s.fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	message := &messaging.Message{
		Token: pushToken.Push_Token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}

	switch pushToken.Platform {
	case "ios":
		message.APNS = &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: payload.Title,
						Body:  payload.Body,
					},
					Sound: payload.Sound,
				},
			},
		}
		if payload.Priority == "high" {
			message.APNS.Headers = map[string]string{
				"apns-priority": "10",
			}
		}
	case "android":
		message.Android = &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Title: payload.Title,
				Body:  payload.Body,
				Sound: payload.Sound,
			},
			Priority: "normal",
		}
		if payload.Priority == "high" {
			message.Android.Priority = "high"
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	response, err := s.fcmClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}

	log.Printf("Successfully sent FCM notification. Message ID: %s", response)
	return nil
}

func (s *PushNotificationService) sendExpoNotification(ctx context.Context, pushToken models.PushToken, payload NotificationPayload) error {
	expoMessage := map[string]interface{}{
		"to":    pushToken.Push_Token,
		"title": payload.Title,
		"body":  payload.Body,
		"data":  payload.Data,
	}

	if payload.Sound != "" {
		expoMessage["sound"] = payload.Sound
	}

	if payload.Priority == "high" {
		expoMessage["priority"] = "high"
	}

	jsonBody, err := json.Marshal(expoMessage)
	if err != nil {
		return fmt.Errorf("failed to marshal Expo message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.expoURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to build Expo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Expo notification: %w", err)
	}
	defer resp.Body.Close()

	responseBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Expo push API returned status %d: %s", resp.StatusCode, string(responseBody))
	}

	log.Printf("Successfully sent Expo notification to %s", pushToken.Push_Token)
	return nil
}
