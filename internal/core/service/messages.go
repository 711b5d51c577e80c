package service

import (
	"errors"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
)

// User-facing notification texts. The platform UI is French.
const (
	msgLoginOK        = "Connexion réussie !"
	msgLoginFailed    = "Erreur lors de la connexion"
	msgLogoutOK       = "Déconnexion réussie"
	msgSessionExpired = "Votre session a expiré. Veuillez vous reconnecter."
	msgGenericError   = "Une erreur est survenue"
	msgTimeout        = "Délai d'attente dépassé. Vérifiez votre connexion."
	msgUnreachable    = "Erreur de connexion au serveur. Vérifiez votre connexion internet."

	msgOtpSentFmt      = "Code de vérification envoyé au %s"
	msgResetOtpSentFmt = "Code de réinitialisation envoyé au %s"
	msgOtpVerified     = "Code vérifié avec succès !"
	msgOtpResent       = "Nouveau code de vérification envoyé"
	msgResetOtpResent  = "Nouveau code de réinitialisation envoyé"
	msgRegisterOK      = "Inscription réussie ! Bienvenue !"
	msgPasswordResetOK = "Mot de passe réinitialisé avec succès !"

	msgMissingPhone    = "Numéro de téléphone manquant"
	msgMissingOtpToken = "Token OTP manquant"

	msgSubscriptionCreated   = "Abonnement créé avec succès !"
	msgSubscriptionCancelled = "Abonnement annulé avec succès !"
)

// userMessage maps a typed error to the text shown in the UI. Server-supplied
// API messages pass through verbatim; transport failures get the dedicated
// timeout/connectivity texts; anything else falls back to the given default.
func userMessage(err error, fallback string) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var netErr *domain.NetworkError
	if errors.As(err, &netErr) {
		if netErr.Timeout {
			return msgTimeout
		}
		return msgUnreachable
	}
	if errors.Is(err, domain.ErrSessionExpired) {
		return msgSessionExpired
	}
	var preErr *domain.PreconditionError
	if errors.As(err, &preErr) {
		switch preErr.Field {
		case "phonenumber":
			return msgMissingPhone
		case "otp token":
			return msgMissingOtpToken
		}
	}
	if fallback != "" {
		return fallback
	}
	return msgGenericError
}
