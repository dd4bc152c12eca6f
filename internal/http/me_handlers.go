package httpapi

import (
	"net/http"

	"deliverypro-backend-go/internal/services"
)

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	user, err := services.GetUser(s.DB, CurrentUserID(r))
	if err != nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]*UserDTO{"user": buildUserDTO(user, s.Config.UploadsPath)})
}

// UploadAvatar replaces the caller's avatar. The handler owns the DB record,
// the service owns validation and the filesystem.
func (s *Server) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID := CurrentUserID(r)
	if err := r.ParseMultipartForm(services.MaxAvatarBytes + 1<<20); err != nil {
		WriteError(w, http.StatusBadRequest, "Upload error")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Upload error")
		return
	}
	defer file.Close()

	user, err := services.GetUser(s.DB, userID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	path, err := services.SaveAvatar(s.Config.UploadsPath, userID, file, header.Size, user.AvatarURL)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if err := services.SetAvatarPath(s.DB, userID, path); err != nil {
		WriteServiceError(w, err)
		return
	}

	flash := "Photo de profil mise à jour"
	if CurrentLocale(r).Lang == services.LangArabic {
		flash = "تم تحديث الصورة الشخصية"
	}
	_ = services.SetFlash(r.Context(), s.Sessions, CurrentSessionID(r), "success", flash)

	user.AvatarURL = &path
	WriteJSON(w, http.StatusOK, map[string]string{
		"path":      path,
		"avatarUrl": services.AvatarURL(user, s.Config.UploadsPath),
	})
}

func (s *Server) Ping(w http.ResponseWriter, r *http.Request) {
	_ = services.TouchLastSeen(s.DB, CurrentUserID(r))
	w.WriteHeader(http.StatusNoContent)
}
