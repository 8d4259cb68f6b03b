package schema

const (
	FieldEmpresa          = "EMPRESA"
	FieldCCU              = "CCU"
	FieldIntegrantes      = "INTEGRANTES DE CUADRILLA"
	FieldContactoCCU      = "CONTACTO CCU"
	FieldFechaInicio      = "FECHA DE INICIO"
	FieldFechaFin         = "FECHA DE FIN"
	FieldCantonEstacion   = "CANTÓN / ESTACIÓN"
	FieldZonaEstacion     = "ZONA DE ESTACIÓN"
	FieldDescripcion      = "DESCRIPCIÓN DE ACTIVIDAD"
	FieldHoraInicio       = "HORA DE INICIO"
	FieldHoraFin          = "HORA DE FIN"
	FieldTipoJornada      = "TIPO DE JORNADA"
	FieldTipoMantenim     = "TIPO DE MANTENIMIENTO / INSPECCIÓN"
	FieldRegistroFalla    = "N° REGISTRO DE FALLA"
	FieldCategoriaRiesgo  = "CATEGORÍA DE RIESGO"
	FieldCategoriaTrabajo = "CATEGORÍA DE TRABAJOS"
	FieldDesenergizacion  = "DESENERGIZACIONES"
	FieldVehiculo         = "VEHÍCULO"
	FieldIluminacion      = "ILUMINACIÓN PARCIAL"
	FieldSenaletica       = "SEÑALETICA PROPIA"
	FieldBloqueoVia       = "BLOQUEO DE VÍA"
	FieldBloqueoDesde     = "DESDE"
	FieldBloqueoHasta     = "HASTA"
	FieldEtiqueta         = "Seleccionar etiqueta"
	FieldCorreo           = "CORREO ELECTRÓNICO DEL SOLICITANTE"
)

// AnchorField marks where real data ends inside the sheet.
const AnchorField = FieldEmpresa

// RequiredFields must all be present and non-blank for a row to be submitted.
var RequiredFields = []string{
	FieldCCU,
	FieldIntegrantes,
	FieldContactoCCU,
	FieldZonaEstacion,
	FieldFechaInicio,
	FieldFechaFin,
	FieldHoraInicio,
	FieldHoraFin,
	FieldRegistroFalla,
	FieldVehiculo,
	FieldIluminacion,
	FieldSenaletica,
	FieldCorreo,
}

var siot = Registry{
	{Name: FieldEmpresa, OutputKey: "empresa", Kind: KindText,
		Aliases: []string{"COMPANY", "EMPRESA CONTRATISTA", "NOMBRE DE EMPRESA", "NOMBRE EMPRESA", "CONTRATISTA"}},
	{Name: FieldCCU, OutputKey: "ccu", Kind: KindText,
		Aliases: []string{"COORDINADOR CCU", "NOMBRE CCU", "NOMBRE DEL CCU", "COORDINADOR DE CAMPO"}},
	{Name: FieldIntegrantes, OutputKey: "integrantes_de_cuadrilla", Kind: KindText,
		Aliases: []string{"INTEGRANTES CUADRILLA", "INTEGRANTE DE CUADRILLA", "INTEGRANTES DE LA CUADRILLA", "CUADRILLA"}},
	{Name: FieldContactoCCU, OutputKey: "c_dula_ccu", Kind: KindText,
		Aliases: []string{"CONTACTO DE CCU", "CONTACTO DEL CCU", "CEDULA CCU", "TELEFONO CCU"}},
	{Name: FieldFechaInicio, OutputKey: "fecha_de_inicio", Kind: KindDate,
		Aliases: []string{"FECHA INICIO", "FECHA INICIAL", "FECHA DE INICIO DE TRABAJOS"}},
	{Name: FieldFechaFin, OutputKey: "fecha_de_fin", Kind: KindDate,
		Aliases: []string{"FECHA FIN", "FECHA FINAL", "FECHA DE TERMINO", "FECHA DE FINALIZACION"}},
	{Name: FieldCantonEstacion, OutputKey: "cant_n_estaci_n", Kind: KindText,
		Aliases: []string{"CANTON/ESTACION", "CANTON ESTACION", "ESTACION"}},
	{Name: FieldZonaEstacion, OutputKey: "zona_de_trabajo", Kind: KindText,
		Aliases: []string{"ZONA ESTACION", "ZONA DE LA ESTACION", "ZONA DE TRABAJO"}},
	{Name: FieldDescripcion, OutputKey: "descripci_n_de_actividad", Kind: KindText,
		Aliases: []string{"DESCRIPCION ACTIVIDAD", "DESCRIPCION DE LA ACTIVIDAD", "DESCRIPCION DE ACTIVIDADES", "ACTIVIDAD"}},
	{Name: FieldHoraInicio, OutputKey: "hora_de_inicio", Kind: KindText,
		Aliases: []string{"HORA INICIO", "HORA INICIAL"}},
	{Name: FieldHoraFin, OutputKey: "hora_de_fin", Kind: KindText,
		Aliases: []string{"HORA FIN", "HORA FINAL", "HORA DE TERMINO"}},
	{Name: FieldTipoJornada, OutputKey: "tipo_de_jornada", Kind: KindText,
		Aliases: []string{"TIPO JORNADA", "JORNADA"}},
	{Name: FieldTipoMantenim, OutputKey: "tipo_de_mantenimiento", Kind: KindText,
		Aliases: []string{"TIPO DE MANTENIMIENTO/INSPECCION", "TIPO DE MANTENIMIENTO", "TIPO MANTENIMIENTO", "TIPO DE INSPECCION"}},
	{Name: FieldRegistroFalla, OutputKey: "registro_de_incidente", Kind: KindText,
		Aliases: []string{"NO REGISTRO DE FALLA", "NRO REGISTRO DE FALLA", "NUMERO DE REGISTRO DE FALLA", "REGISTRO DE FALLA", "N REGISTRO FALLA"}},
	{Name: FieldCategoriaRiesgo, OutputKey: "categor_a_de_riesgo", Kind: KindText,
		Aliases: []string{"CATEGORIA RIESGO"}},
	{Name: FieldCategoriaTrabajo, OutputKey: "categor_a_de_trabajos", Kind: KindText,
		Aliases: []string{"CATEGORIA DE TRABAJO", "CATEGORIA TRABAJOS"}},
	{Name: FieldDesenergizacion, OutputKey: "desenergizaci_n", Kind: KindText,
		Aliases: []string{"DESENERGIZACION"}},
	{Name: FieldVehiculo, OutputKey: "veh_culo", Kind: KindMultiValue,
		Aliases: []string{"VEHICULOS", "VEHICULO ASIGNADO"}},
	{Name: FieldIluminacion, OutputKey: "iluminaci_n_parcia", Kind: KindMultiValue,
		Aliases: []string{"ILUMINACION"}},
	{Name: FieldSenaletica, OutputKey: "se_aletica_propia", Kind: KindMultiValue,
		Aliases: []string{"SENALETICA"}},
	{Name: "R1", OutputKey: "r1_1", Kind: KindMultiValue},
	{Name: "R2", OutputKey: "r2_1", Kind: KindMultiValue},
	{Name: "P1", OutputKey: "p1", Kind: KindMultiValue},
	{Name: "P3", OutputKey: "p3", Kind: KindMultiValue},
	{Name: "E1", OutputKey: "e1", Kind: KindMultiValue},
	{Name: "V3", OutputKey: "v3", Kind: KindMultiValue},
	{Name: "P6", OutputKey: "copy_of_se_aletica_propia", Kind: KindMultiValue},
	{Name: "P7", OutputKey: "copy_of_r1", Kind: KindMultiValue},
	{Name: "P8", OutputKey: "copy_of_p3", Kind: KindMultiValue},
	{Name: FieldBloqueoVia, OutputKey: "bloqueo_de_v_a_1", Kind: KindMultiValue,
		Aliases: []string{"BLOQUEO VIA", "BLOQUEO DE VIAS"}},
	{Name: FieldBloqueoDesde, OutputKey: "bloqueo_desde", Kind: KindText,
		Aliases: []string{"BLOQUEO DESDE"}},
	{Name: FieldBloqueoHasta, OutputKey: "hasta", Kind: KindText,
		Aliases: []string{"BLOQUEO HASTA"}},
	{Name: FieldEtiqueta, OutputKey: "seleccionar_etiqueta", Kind: KindLabelSelect,
		Aliases: []string{"ETIQUETA", "ETIQUETAS", "SELECCIONAR ETIQUETAS"}},
	{Name: FieldCorreo, OutputKey: "correo_electr_nico_del_solicitante", Kind: KindText,
		Aliases: []string{"CORREO DEL SOLICITANTE", "CORREO SOLICITANTE", "CORREO ELECTRONICO SOLICITANTE", "EMAIL SOLICITANTE", "E-MAIL DEL SOLICITANTE"}},
}

// SIOT returns the work-order schema.
func SIOT() Registry {
	return siot
}
