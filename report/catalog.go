package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Supported report languages. English keys double as the English text.
var supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(supported)

// NewPrinter returns a printer for the closest supported language,
// English when lang is empty or unknown.
func NewPrinter(lang string) *message.Printer {
	return message.NewPrinter(Match(lang))
}

func Match(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

var spanish = [][2]string{
	// compare
	{"STATISTICAL ANALYSIS OF RESULTS", "ANÁLISIS ESTADÍSTICO DE RESULTADOS REALES"},
	{"RESULTS", "DATOS REALES OBTENIDOS"},
	{"%-22s %15s %12s %12s %10s %12s", "%-22s %15s %12s %12s %10s %12s"},
	{"STRATEGY", "ESTRATEGIA"},
	{"π", "π CALCULADO"},
	{"TIME (s)", "TIEMPO (s)"},
	{"ERROR", "ERROR"},
	{"SPEEDUP", "SPEEDUP"},
	{"EFFICIENCY", "EFICIENCIA"},
	{"PERFORMANCE METRICS:", "MÉTRICAS DE RENDIMIENTO REALES:"},
	{"   Fastest strategy: %s (%.4fs)", "   Estrategia más rápida: %s (%.4fs)"},
	{"   Best speedup: %s (%.3fx)", "   Mejor speedup: %s (%.3fx)"},
	{"   Largest difference: %.2fx slower", "   Diferencia máxima: %.2fx más lenta"},
	{"   Mean time: %.4fs, median: %.4fs", "   Tiempo medio: %.4fs, mediana: %.4fs"},
	{"NUMERICAL PRECISION:", "PRECISIÓN NUMÉRICA:"},
	{"   Best precision: %s (Error: %s)", "   Mejor precisión: %s (Error: %s)"},
	{"PARALLEL EFFICIENCY (%d threads):", "EFICIENCIA DE PARALELIZACIÓN (%d hilos):"},
	{"   Best efficiency: %s (%.1f%%)", "   Mejor eficiencia: %s (%.1f%%)"},
	{"INTERPRETATION:", "INTERPRETACIÓN DE RESULTADOS REALES:"},
	{"   %s: %.4fs, Speedup: %.3fx", "   %s: %.4fs, Speedup: %.3fx"},
	{"RECOMMENDATIONS:", "RECOMENDACIONES BASADAS EN DATOS REALES:"},
	{"MUTEX: usually the best balance between performance and ease of use", "MUTEX: Generalmente mejor balance rendimiento/facilidad de uso"},
	{"BUSY-WAITING_FUERA: good performance but burns CPU while waiting", "BUSY-WAITING_FUERA: Buen rendimiento pero consume CPU en espera"},
	{"BUSY-WAITING_DENTRO: avoid, the computation is fully serialized", "BUSY-WAITING_DENTRO: Evitar - serialización completa"},
	{"No data to analyze", "No hay datos para analizar"},

	// busywait
	{"TECHNICAL REPORT: BUSY-WAITING INSIDE THE LOOP", "REPORTE TÉCNICO: BUSY-WAITING DENTRO DEL BUCLE"},
	{"DATA:", "DATOS OBTENIDOS:"},
	{"   • Sequential time: %.6f seconds", "   • Tiempo secuencial: %.6f segundos"},
	{"   • Busy-waiting inside time: %.6f seconds", "   • Tiempo busy-waiting dentro: %.6f segundos"},
	{"   • Slowdown factor: %.2fx", "   • Factor de lentitud: %.2fx"},
	{"   • Sequential π: %.10f", "   • π calculado secuencial: %.10f"},
	{"   • Busy-waiting π: %.10f", "   • π calculado busy-waiting: %.10f"},
	{"TECHNICAL ANALYSIS:", "ANÁLISIS TÉCNICO:"},
	{"   1. SYNCHRONIZATION OVERHEAD:", "   1. OVERHEAD DE SINCRONIZACIÓN:"},
	{"      - %d terms × %d threads = ~%d synchronization operations", "      - %d términos × %d hilos = ~%d operaciones de sincronización"},
	{"      - Every term requires active waiting and a context switch", "      - Cada término requiere espera activa y cambio de contexto"},
	{"      - Synchronization cost dominates the useful computation", "      - El costo de sincronización domina sobre el cálculo útil"},
	{"   2. PROBLEMS FOUND:", "   2. PROBLEMAS IDENTIFICADOS:"},
	{"      • SERIALIZATION: only one thread works at a time", "      • SERIALIZACIÓN: Solo un hilo trabaja a la vez"},
	{"      • ACTIVE WAITING: CPU time spent polling", "      • ESPERA ACTIVA: Consumo innecesario de CPU"},
	{"      • CONTENTION: every thread competes for the same resource", "      • CONTENCIÓN: Todos los hilos compiten por el mismo recurso"},
	{"      • INEFFICIENCY: slower than the sequential version", "      • INEFICIENCIA: Más lento que la versión secuencial"},
	{"DESIGN RECOMMENDATIONS:", "RECOMENDACIONES DE DISEÑO:"},
	{"BUSY-WAITING OUTSIDE the loop:", "BUSY-WAITING FUERA del bucle:"},
	{"      - Independent parallel computation", "      - Cálculo paralelo independiente"},
	{"      - A single synchronization at the end", "      - Una sola sincronización al final"},
	{"      - Full use of the available parallelism", "      - Máximo aprovechamiento del paralelismo"},
	{"MUTEX for critical sections:", "MUTEX para secciones críticas:"},
	{"      - Synchronization handled by the OS", "      - Sincronización controlada por el SO"},
	{"      - No CPU spent while waiting", "      - No consume CPU en espera"},
	{"      - Efficient for batched operations", "      - Eficiente para operaciones agrupadas"},
	{"AVOID busy-waiting inside loops:", "EVITAR busy-waiting dentro de bucles:"},
	{"      - Demonstrated anti-pattern", "      - Anti-patrón demostrado"},
	{"      - Complete serialization", "      - Serialización completa"},
	{"      - All benefits of parallelism are lost", "      - Pérdida total de beneficios del paralelismo"},
}

func init() {
	for _, kv := range spanish {
		message.SetString(language.Spanish, kv[0], kv[1])
	}
}
