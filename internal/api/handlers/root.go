package handlers

import (
	"net/http"

	"github.com/deepgram/chatrelay/pkg/httpext"
)

const welcomeMessage = "Welcome to the Chatbot API. Send a POST request to /chat to begin."

func HandleRoot(w http.ResponseWriter, r *http.Request) {
	httpext.JsonResponse(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	httpext.JsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
