package storage

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Document bucket backed by Cloudinary raw storage, configured via
// CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET and
// optionally CLOUDINARY_FOLDER. CLOUDINARY_API_BASE overrides the API
// host (used by tests).

func apiBase() string {
	if base := os.Getenv("CLOUDINARY_API_BASE"); base != "" {
		return base
	}
	return "https://api.cloudinary.com"
}

// UploadDocument pushes one blob under the given object key and returns
// its public URL, or "" on any failure. The key is already collision
// safe ({property_id}/{epoch_millis}-{filename}); the folder env var
// only adds a deployment-level prefix.
func UploadDocument(key string, data []byte) string {
	if len(data) == 0 {
		fmt.Printf("ERROR: Empty document payload\n")
		return ""
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	folder := os.Getenv("CLOUDINARY_FOLDER")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		fmt.Printf("ERROR: Missing Cloudinary env vars\n")
		return ""
	}

	publicID := key
	if folder != "" {
		publicID = folder + "/" + key
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, apiSecret)
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", key)
	if err != nil {
		fmt.Printf("ERROR: Failed to build upload form: %v\n", err)
		return ""
	}
	if _, err := part.Write(data); err != nil {
		fmt.Printf("ERROR: Failed to build upload form: %v\n", err)
		return ""
	}
	form.WriteField("api_key", apiKey)
	form.WriteField("public_id", publicID)
	form.WriteField("timestamp", timestamp)
	form.WriteField("signature", signature)
	form.Close()

	endpoint := apiBase() + "/v1_1/" + cloudName + "/raw/upload"
	req, err := http.NewRequest("POST", endpoint, &body)
	if err != nil {
		fmt.Printf("ERROR: Failed to create request: %v\n", err)
		return ""
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("ERROR: HTTP request failed: %v\n", err)
		return ""
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Printf("ERROR: Failed to read response: %v\n", err)
		return ""
	}

	if res.StatusCode != 200 {
		fmt.Printf("ERROR: Upload failed with status %d: %s\n", res.StatusCode, string(resBody))
		return ""
	}

	var cloudRes struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resBody, &cloudRes); err != nil {
		fmt.Printf("ERROR: Failed to parse JSON: %v\n", err)
		return ""
	}
	if cloudRes.Error.Message != "" {
		fmt.Printf("ERROR: Cloudinary error: %s\n", cloudRes.Error.Message)
		return ""
	}

	out := cloudRes.SecureURL
	if out == "" {
		out = cloudRes.URL
	}
	if out == "" {
		fmt.Printf("ERROR: No URL returned from Cloudinary\n")
	}
	return out
}

// DeleteDocumentBlob removes the blob behind a previously returned
// public URL. Best effort: callers treat false as storage drift, not a
// fatal error.
func DeleteDocumentBlob(fileURL string) bool {
	publicID := publicIDFromURL(fileURL)
	if publicID == "" {
		fmt.Printf("ERROR: Cannot derive public id from URL: %s\n", fileURL)
		return false
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		fmt.Printf("ERROR: Missing Cloudinary env vars\n")
		return false
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, apiSecret)
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))

	form := url.Values{}
	form.Add("public_id", publicID)
	form.Add("api_key", apiKey)
	form.Add("timestamp", timestamp)
	form.Add("signature", signature)

	endpoint := apiBase() + "/v1_1/" + cloudName + "/raw/destroy"
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		fmt.Printf("ERROR: Failed to create deletion request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("ERROR: Deletion request failed: %v\n", err)
		return false
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Printf("ERROR: Failed to read deletion response: %v\n", err)
		return false
	}
	if res.StatusCode != 200 {
		fmt.Printf("ERROR: Deletion failed with status %d: %s\n", res.StatusCode, string(resBody))
		return false
	}

	var deleteRes struct {
		Result string `json:"result"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resBody, &deleteRes); err != nil {
		fmt.Printf("ERROR: Failed to parse deletion response: %v\n", err)
		return false
	}
	if deleteRes.Error.Message != "" {
		fmt.Printf("ERROR: Cloudinary deletion error: %s\n", deleteRes.Error.Message)
		return false
	}
	return deleteRes.Result == "ok"
}

// publicIDFromURL extracts the object key from a delivery URL of the
// form .../raw/upload/v{version}/{public_id}. Raw public ids keep their
// file extension, so nothing is stripped.
func publicIDFromURL(fileURL string) string {
	marker := "/upload/"
	i := strings.Index(fileURL, marker)
	if i == -1 {
		return ""
	}
	rest := fileURL[i+len(marker):]
	// Drop the version segment if present.
	if strings.HasPrefix(rest, "v") {
		if j := strings.Index(rest, "/"); j != -1 {
			if _, err := fmt.Sscanf(rest[1:j], "%d", new(int)); err == nil {
				rest = rest[j+1:]
			}
		}
	}
	return rest
}
