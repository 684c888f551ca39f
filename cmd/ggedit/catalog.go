package main

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. The English text doubles as the key and as the fallback
// when no translation exists for the selected language.
const (
	msgMenu = "\n--- Image Editing Platform ---\n" +
		"1. Load image\n" +
		"2. Show pixel matrix\n" +
		"3. Save image\n" +
		"4. Adjust brightness (+/- value)\n" +
		"5. Gaussian blur\n" +
		"6. Rotate image (degrees, bilinear)\n" +
		"7. Detect edges (Sobel)\n" +
		"8. Resize image (bilinear)\n" +
		"9. Quit\n" +
		"Option: "

	msgAskLoadPath   = "Path of the image file: "
	msgAskSavePath   = "Output file name: "
	msgAskDelta      = "Brightness delta (+ brighter, - darker): "
	msgAskKernel     = "Kernel size (odd, e.g. 3 or 5): "
	msgAskSigma      = "Gaussian sigma (e.g. 1.0): "
	msgAskWorkers    = "Number of workers: "
	msgAskAngle      = "Angle in degrees (e.g. 90, 45, -30): "
	msgAskWidth      = "New width: "
	msgAskHeight     = "New height: "
	msgLoaded        = "Image loaded: %s, %d channels (%s)\n"
	msgMatrixHeader  = "Image matrix (first %d rows):\n"
	msgSaved         = "Image saved to %s\n"
	msgBrightness    = "Brightness adjusted with %d workers (%s).\n"
	msgBlurred       = "Gaussian blur applied (kernel %d, sigma %.2f, %d workers).\n"
	msgRotated       = "Image rotated %.2f degrees. New size: %s (%d workers).\n"
	msgSobel         = "Edges detected with Sobel using %d workers.\n"
	msgResized       = "Image resized to %s with %d workers.\n"
	msgGoodbye       = "Goodbye!\n"
	msgInvalidInput  = "Invalid input.\n"
	msgInvalidOption = "Invalid option.\n"
	msgNoImage       = "No image loaded.\n"
	msgError         = "Error: %v\n"
	msgGray          = "gray"
	msgRGB           = "RGB"
)

var spanish = map[string]string{
	msgMenu: "\n--- Plataforma de Edición de Imágenes ---\n" +
		"1. Cargar imagen\n" +
		"2. Mostrar matriz de píxeles\n" +
		"3. Guardar imagen\n" +
		"4. Ajustar brillo (+/- valor)\n" +
		"5. Aplicar desenfoque Gaussiano\n" +
		"6. Rotar imagen (grados, bilinear)\n" +
		"7. Detectar bordes (Sobel)\n" +
		"8. Redimensionar imagen (bilinear)\n" +
		"9. Salir\n" +
		"Opción: ",

	msgAskLoadPath:   "Ruta del archivo de imagen: ",
	msgAskSavePath:   "Nombre del archivo de salida: ",
	msgAskDelta:      "Valor de ajuste de brillo (+ más claro, - más oscuro): ",
	msgAskKernel:     "Tamaño del kernel (impar, p. ej. 3 o 5): ",
	msgAskSigma:      "Sigma del kernel Gaussiano (p. ej. 1.0): ",
	msgAskWorkers:    "Número de hilos a usar: ",
	msgAskAngle:      "Ángulo en grados (p. ej. 90, 45, -30): ",
	msgAskWidth:      "Nuevo ancho: ",
	msgAskHeight:     "Nuevo alto: ",
	msgLoaded:        "Imagen cargada: %s, %d canales (%s)\n",
	msgMatrixHeader:  "Matriz de la imagen (primeras %d filas):\n",
	msgSaved:         "Imagen guardada en %s\n",
	msgBrightness:    "Brillo ajustado con %d hilos (%s).\n",
	msgBlurred:       "Desenfoque Gaussiano aplicado (kernel %d, sigma %.2f, %d hilos).\n",
	msgRotated:       "Imagen rotada %.2f grados. Nuevo tamaño: %s (%d hilos).\n",
	msgSobel:         "Bordes detectados con Sobel usando %d hilos.\n",
	msgResized:       "Imagen redimensionada a %s con %d hilos.\n",
	msgGoodbye:       "¡Adiós!\n",
	msgInvalidInput:  "Entrada inválida.\n",
	msgInvalidOption: "Opción inválida.\n",
	msgNoImage:       "No hay imagen cargada.\n",
	msgError:         "Error: %v\n",
	msgGray:          "grises",
	msgRGB:           "RGB",
}

// supported lists the menu languages, English first as the fallback.
var supported = []language.Tag{language.English, language.Spanish}

func init() {
	for key, msg := range spanish {
		if err := message.SetString(language.Spanish, key, msg); err != nil {
			panic(err)
		}
	}
}

// newPrinter returns a printer for the best supported match of lang.
func newPrinter(lang string) (*message.Printer, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, err
	}
	matched, _, _ := language.NewMatcher(supported).Match(tag)
	return message.NewPrinter(matched), nil
}
