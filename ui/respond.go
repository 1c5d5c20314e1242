package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"paysheet/internal/apperr"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxUploadBytes caps multipart workbook uploads.
const maxUploadBytes = 32 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := apperr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[HTTP] %v", err)
	}
	writeJSON(w, status, map[string]string{
		"code":  apperr.CodeOf(err),
		"error": err.Error(),
	})
}

func writeWorkbook(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("[HTTP] write workbook: %v", err)
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.InvalidInput("invalid JSON body: " + err.Error())
	}
	return nil
}

// readUpload pulls the uploaded workbook out of a multipart form. The
// file part must be named "file".
func readUpload(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, apperr.InvalidInput("invalid multipart form: " + err.Error())
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, apperr.InvalidInput("missing file part \"file\"")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, apperr.InvalidInput("reading upload: " + err.Error())
	}
	return data, nil
}
