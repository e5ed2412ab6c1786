package dto

// ExportRequest ruta destino opcional (relativa al directorio de exportación).
type ExportRequest struct {
	FilePath string `json:"file_path"`
}

// CSVResponse resultado de una importación o exportación.
type CSVResponse struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data,omitempty"`
	FilePath string      `json:"file_path,omitempty"`
}
