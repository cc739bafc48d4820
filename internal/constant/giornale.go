package constant

// Layout of daily-log IDs and of the date segment of attachment object names.
const LogDateLayout = "2006-01-02"

type ResourceType string

const (
	ResourceTypeManodopera  ResourceType = "Manodopera"
	ResourceTypeMacchinario ResourceType = "Macchinario/Mezzo"
)

func (rt ResourceType) IsValid() bool {
	return rt == ResourceTypeManodopera || rt == ResourceTypeMacchinario
}

type WeatherState string

const (
	WeatherSole      WeatherState = "Sole"
	WeatherVariabile WeatherState = "Variabile"
	WeatherNuvoloso  WeatherState = "Nuvoloso"
	WeatherPioggia   WeatherState = "Pioggia"
	WeatherNeve      WeatherState = "Neve"
)

func (ws WeatherState) IsValid() bool {
	switch ws {
	case WeatherSole, WeatherVariabile, WeatherNuvoloso, WeatherPioggia, WeatherNeve:
		return true
	}
	return false
}

type Precipitation string

const (
	PrecipitationAssenti  Precipitation = "Assenti"
	PrecipitationDeboli   Precipitation = "Deboli"
	PrecipitationModerate Precipitation = "Moderate"
	PrecipitationForti    Precipitation = "Forti"
)

func (p Precipitation) IsValid() bool {
	switch p {
	case PrecipitationAssenti, PrecipitationDeboli, PrecipitationModerate, PrecipitationForti:
		return true
	}
	return false
}

type AnnotationType string

const (
	AnnotationLavoriSvolti         AnnotationType = "Descrizione Lavori Svolti"
	AnnotationOrdineServizio       AnnotationType = "Istruzioni / Ordine di Servizio"
	AnnotationOsservazioni         AnnotationType = "Osservazioni e Annotazioni"
	AnnotationVerbaleConstatazione AnnotationType = "Verbale di Constatazione"
	AnnotationVerbaleMateriali     AnnotationType = "Verbale di Accettazione Materiali"
	AnnotationContestazione        AnnotationType = "Contestazione dell'Impresa"
)

func AnnotationTypes() []AnnotationType {
	return []AnnotationType{
		AnnotationLavoriSvolti,
		AnnotationOrdineServizio,
		AnnotationOsservazioni,
		AnnotationVerbaleConstatazione,
		AnnotationVerbaleMateriali,
		AnnotationContestazione,
	}
}

func (at AnnotationType) IsValid() bool {
	for _, t := range AnnotationTypes() {
		if at == t {
			return true
		}
	}
	return false
}

type StakeholderRole string

const (
	RoleDirettoreLavori StakeholderRole = "Direttore dei Lavori (DL)"
	RoleRUP             StakeholderRole = "Responsabile del Procedimento (RUP)"
	RoleCSE             StakeholderRole = "Coordinatore per la Sicurezza (CSE)"
	RoleImpresa         StakeholderRole = "Impresa Esecutrice"
	RoleAssistenteDL    StakeholderRole = "Assistente del DL"
)

type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentVideo AttachmentType = "video"
	AttachmentPdf   AttachmentType = "pdf"
)
