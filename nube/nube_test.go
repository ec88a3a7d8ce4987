package nube

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pachi/visol/internal/pruebas"
	"github.com/pachi/visol/lector"
	"github.com/pachi/visol/modelo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// MOCK DE CLIENTE S3 PARA TESTS
// ============================================================================

// mockClienteS3 implementa ClienteS3 guardando los objetos en memoria
type mockClienteS3 struct {
	objetos map[string][]byte
	tipos   map[string]string
	paginas int // objetos por página en ListObjectsV2 (0 = sin paginar)

	headBucketErr   error
	createBucketErr error
	putObjectErr    error
	listObjectsErr  error

	// Para verificar llamadas
	createBucketCalls int
	putObjectCalls    int
	listObjectsCalls  int
}

func nuevoMock() *mockClienteS3 {
	return &mockClienteS3{objetos: make(map[string][]byte), tipos: make(map[string]string)}
}

func (m *mockClienteS3) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if m.headBucketErr != nil {
		return nil, m.headBucketErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (m *mockClienteS3) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	m.createBucketCalls++
	if m.createBucketErr != nil {
		return nil, m.createBucketErr
	}
	return &s3.CreateBucketOutput{}, nil
}

func (m *mockClienteS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.putObjectCalls++
	if m.putObjectErr != nil {
		return nil, m.putObjectErr
	}
	datos, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	clave := aws.ToString(params.Key)
	m.objetos[clave] = datos
	m.tipos[clave] = aws.ToString(params.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (m *mockClienteS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.listObjectsCalls++
	if m.listObjectsErr != nil {
		return nil, m.listObjectsErr
	}
	claves := make([]string, 0, len(m.objetos))
	for clave := range m.objetos {
		if strings.HasPrefix(clave, aws.ToString(params.Prefix)) {
			claves = append(claves, clave)
		}
	}
	sort.Strings(claves)

	inicio := 0
	if params.ContinuationToken != nil {
		for i, c := range claves {
			if c == aws.ToString(params.ContinuationToken) {
				inicio = i
			}
		}
	}
	fin := len(claves)
	if m.paginas > 0 && inicio+m.paginas < fin {
		fin = inicio + m.paginas
	}

	salida := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(fin < len(claves))}
	for _, c := range claves[inicio:fin] {
		salida.Contents = append(salida.Contents, types.Object{Key: aws.String(c)})
	}
	if fin < len(claves) {
		salida.NextContinuationToken = aws.String(claves[fin])
	}
	return salida, nil
}

// cargarReferencia guarda el caso de referencia (.res y .bin) en un directorio temporal y lo carga
func cargarReferencia(t *testing.T) *modelo.Modelo {
	t.Helper()
	dir := t.TempDir()
	rutaRes := pruebas.EscribirRes(t, dir, "edificio.res")
	datos, err := lector.CodificarBin(pruebas.ZonasReferencia())
	require.NoError(t, err)
	pruebas.EscribirArchivo(t, dir, "edificio.bin", datos)

	m, err := modelo.Cargar(rutaRes, modelo.Opciones{})
	require.NoError(t, err)
	return m
}

func instanteFijo() time.Time {
	return time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
}

// ============================================================================
// Tests de configuración
// ============================================================================

func TestConfiguracionS3_Defaults(t *testing.T) {
	cfg := ConfiguracionS3{AccessKeyID: "id", SecretAccessKey: "secreto"}
	cfg.AplicarDefaults()

	assert.Equal(t, "http://localhost:3900", cfg.Endpoint)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "visol-resultados", cfg.Bucket)
	assert.NoError(t, cfg.Validar())
}

func TestConfiguracionS3_Validar(t *testing.T) {
	testCases := []struct {
		name string
		cfg  ConfiguracionS3
	}{
		{"sin credenciales", ConfiguracionS3{Endpoint: "http://s3", Bucket: "b"}},
		{"sin secreto", ConfiguracionS3{Endpoint: "http://s3", Bucket: "b", AccessKeyID: "id"}},
		{"sin bucket", ConfiguracionS3{Endpoint: "http://s3", AccessKeyID: "id", SecretAccessKey: "s"}},
		{"endpoint sin esquema", ConfiguracionS3{Endpoint: "s3.local", Bucket: "b", AccessKeyID: "id", SecretAccessKey: "s"}},
		{"endpoint ftp", ConfiguracionS3{Endpoint: "ftp://s3.local", Bucket: "b", AccessKeyID: "id", SecretAccessKey: "s"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.cfg.Validar())
		})
	}
}

func TestConfiguracionS3DesdeEntorno(t *testing.T) {
	t.Setenv("S3_ENDPOINT", "https://s3.ejemplo.es")
	t.Setenv("S3_REGION", "")
	t.Setenv("S3_BUCKET", "resultados")
	t.Setenv("S3_ACCESS_KEY_ID", "id")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secreto")

	cfg, err := ConfiguracionS3DesdeEntorno()
	require.NoError(t, err)
	assert.Equal(t, "https://s3.ejemplo.es", cfg.Endpoint)
	assert.Equal(t, "resultados", cfg.Bucket)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "id", cfg.AccessKeyID)
	assert.Equal(t, "secreto", cfg.SecretAccessKey)
	assert.NoError(t, cfg.Validar())
}

func TestCrearClienteS3_ConfiguracionInvalida(t *testing.T) {
	_, err := CrearClienteS3(context.Background(), ConfiguracionS3{})
	assert.Error(t, err)
}

// ============================================================================
// Tests de bucket
// ============================================================================

func TestNuevoArchivador_BucketExistente(t *testing.T) {
	mock := nuevoMock()
	_, err := NuevoArchivador(context.Background(), mock, ConfiguracionS3{})
	require.NoError(t, err)
	assert.Equal(t, 0, mock.createBucketCalls)
}

func TestNuevoArchivador_CreaBucket(t *testing.T) {
	mock := nuevoMock()
	mock.headBucketErr = errors.New("NotFound")

	_, err := NuevoArchivador(context.Background(), mock, ConfiguracionS3{})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.createBucketCalls)
}

func TestNuevoArchivador_ErrorCreandoBucket(t *testing.T) {
	mock := nuevoMock()
	mock.headBucketErr = errors.New("NotFound")
	mock.createBucketErr = errors.New("AccessDenied")

	_, err := NuevoArchivador(context.Background(), mock, ConfiguracionS3{})
	assert.ErrorIs(t, err, mock.createBucketErr)
}

// ============================================================================
// Tests de archivado
// ============================================================================

// TestArchivar verifica las claves, contenidos y el resumen subidos
func TestArchivar(t *testing.T) {
	m := cargarReferencia(t)
	mock := nuevoMock()
	a, err := NuevoArchivador(context.Background(), mock, ConfiguracionS3{Bucket: "b"})
	require.NoError(t, err)
	a.ahora = instanteFijo

	archivo, err := a.Archivar(context.Background(), m)
	require.NoError(t, err)

	prefijo := "edificio/20260301T103000Z/"
	assert.Equal(t, prefijo, archivo.Prefijo)
	assert.Equal(t, []string{prefijo + "edificio.res", prefijo + "edificio.bin", prefijo + NombreResumen}, archivo.Claves)
	assert.Equal(t, 3, mock.putObjectCalls)

	res, err := lector.LeerArchivo(m.RutaRes, lector.MaxTamanoDefecto)
	require.NoError(t, err)
	assert.Equal(t, res, mock.objetos[prefijo+"edificio.res"])
	assert.Equal(t, "application/json", mock.tipos[prefijo+NombreResumen])

	var resumen Resumen
	require.NoError(t, json.Unmarshal(mock.objetos[prefijo+NombreResumen], &resumen))
	assert.Equal(t, "edificio", resumen.Edificio.Nombre)
	assert.Equal(t, m.Edificio.Superficie, resumen.Edificio.Superficie)
	assert.Equal(t, m.Edificio.CalefaccionMeses, resumen.CalefaccionMeses)
	require.Len(t, resumen.Plantas, 2)
	assert.Equal(t, "P01", resumen.Plantas[0].Nombre)
	require.Len(t, resumen.Plantas[0].Zonas, 4)
	assert.Equal(t, 2, resumen.Plantas[0].Zonas[3].Multiplicador)
	assert.Len(t, resumen.Plantas[1].Zonas, 6)
	assert.Len(t, resumen.ZonasHorarias, 10)
	assert.True(t, instanteFijo().Equal(resumen.Instante))

	t.Log("✓ Modelo archivado con resumen")
}

func TestArchivar_SinBin(t *testing.T) {
	dir := t.TempDir()
	rutaRes := pruebas.EscribirRes(t, dir, "edificio.res")
	m, err := modelo.Cargar(rutaRes, modelo.Opciones{})
	require.NoError(t, err)

	mock := nuevoMock()
	a, err := NuevoArchivador(context.Background(), mock, ConfiguracionS3{})
	require.NoError(t, err)

	archivo, err := a.Archivar(context.Background(), m)
	require.NoError(t, err)
	assert.Len(t, archivo.Claves, 2)

	var resumen Resumen
	require.NoError(t, json.Unmarshal(mock.objetos[archivo.Prefijo+NombreResumen], &resumen))
	assert.Empty(t, resumen.ZonasHorarias)
}

func TestArchivar_Errores(t *testing.T) {
	m := cargarReferencia(t)

	mock := nuevoMock()
	mock.putObjectErr = errors.New("SlowDown")
	a, err := NuevoArchivador(context.Background(), mock, ConfiguracionS3{})
	require.NoError(t, err)

	_, err = a.Archivar(context.Background(), m)
	assert.ErrorIs(t, err, mock.putObjectErr)
	assert.Equal(t, 1, mock.putObjectCalls)

	_, err = a.Archivar(context.Background(), nil)
	assert.Error(t, err)
}

func TestListar_Paginado(t *testing.T) {
	m := cargarReferencia(t)
	mock := nuevoMock()
	mock.paginas = 2
	a, err := NuevoArchivador(context.Background(), mock, ConfiguracionS3{})
	require.NoError(t, err)

	a.ahora = instanteFijo
	_, err = a.Archivar(context.Background(), m)
	require.NoError(t, err)
	a.ahora = func() time.Time { return instanteFijo().Add(time.Hour) }
	_, err = a.Archivar(context.Background(), m)
	require.NoError(t, err)

	claves, err := a.Listar(context.Background(), "edificio")
	require.NoError(t, err)
	assert.Len(t, claves, 6)
	assert.Equal(t, 3, mock.listObjectsCalls)

	claves, err = a.Listar(context.Background(), "otro")
	require.NoError(t, err)
	assert.Empty(t, claves)
}

func TestListar_Error(t *testing.T) {
	mock := nuevoMock()
	mock.listObjectsErr = errors.New("AccessDenied")
	a, err := NuevoArchivador(context.Background(), mock, ConfiguracionS3{})
	require.NoError(t, err)

	_, err = a.Listar(context.Background(), "edificio")
	assert.ErrorIs(t, err, mock.listObjectsErr)
}
